// file: internals/features/funnel/checkout/service/checkout_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qservice "suitability_backend/internals/features/funnel/quiz/service"
	smodel "suitability_backend/internals/features/funnel/submissions/model"
)

func testCheckout() *CheckoutService {
	return &CheckoutService{
		CheckoutURL: "/checkout",
		ReviewURL:   "/review",
		FollowupURL: "/followup",
	}
}

func TestResolvePassBuildsCheckoutRedirect(t *testing.T) {
	svc := testCheckout()

	url, payload := svc.Resolve(qservice.BandPass, smodel.PackageMonthly, 99)
	assert.Equal(t, "/checkout?package=monthly&price=99.00", url)
	require.NotNil(t, payload)
	assert.Equal(t, "monthly", payload.PackageType)
	assert.Equal(t, 99.0, payload.PackagePrice)
}

func TestResolvePassWithoutSelectionFallsBackToNone(t *testing.T) {
	svc := testCheckout()

	url, payload := svc.Resolve(qservice.BandPass, "", 0)
	assert.Equal(t, "/checkout?package=none&price=0.00", url)
	require.NotNil(t, payload)
	assert.Equal(t, "none", payload.PackageType)
}

func TestResolveBorderlineAndFail(t *testing.T) {
	svc := testCheckout()

	url, payload := svc.Resolve(qservice.BandBorderline, smodel.PackageMonthly, 99)
	assert.Equal(t, "/review", url)
	assert.Nil(t, payload)

	url, payload = svc.Resolve(qservice.BandFail, smodel.PackageMonthly, 99)
	assert.Equal(t, "/followup", url)
	assert.Nil(t, payload)
}

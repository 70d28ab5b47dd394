// file: internals/features/funnel/checkout/service/checkout_service.go
package service

import (
	"fmt"
	"net/url"

	"suitability_backend/internals/configs"
	qservice "suitability_backend/internals/features/funnel/quiz/service"
	smodel "suitability_backend/internals/features/funnel/submissions/model"
)

/* =========================================================
   CHECKOUT HAND-OFF
   On PASS the funnel emits {package_type, package_price} for the external
   commerce collaborator plus a checkout redirect carrying the selection.
   The cart itself is never mutated here. BORDERLINE goes to the
   supplemental review page, FAIL to the follow-up page.
========================================================= */

// CheckoutPayload is what the commerce collaborator consumes to add a
// line item.
type CheckoutPayload struct {
	PackageType  string  `json:"package_type"`
	PackagePrice float64 `json:"package_price"`
}

type CheckoutService struct {
	CheckoutURL string
	ReviewURL   string
	FollowupURL string
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		CheckoutURL: configs.CheckoutURL,
		ReviewURL:   configs.ReviewURL,
		FollowupURL: configs.FollowupURL,
	}
}

// Resolve maps a scoring band (and the respondent's package selection) to
// the redirect target. The payload is non-nil only on PASS.
func (s *CheckoutService) Resolve(band qservice.Band, pkg smodel.SelectedPackage, price float64) (string, *CheckoutPayload) {
	switch band {
	case qservice.BandPass:
		pkgType := string(pkg)
		if pkgType == "" {
			pkgType = string(smodel.PackageNone)
		}
		q := url.Values{}
		q.Set("package", pkgType)
		q.Set("price", fmt.Sprintf("%.2f", price))
		return s.CheckoutURL + "?" + q.Encode(), &CheckoutPayload{
			PackageType:  pkgType,
			PackagePrice: price,
		}
	case qservice.BandBorderline:
		return s.ReviewURL, nil
	default:
		return s.FollowupURL, nil
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"foodbasket-be/internal/address"
	"foodbasket-be/internal/category"
	"foodbasket-be/internal/loyalty"
	"foodbasket-be/internal/order"
	"foodbasket-be/internal/paylater"
	"foodbasket-be/internal/product"
	"foodbasket-be/internal/user"
	"foodbasket-be/internal/wallet"
)

// maxBodySize caps JSON request bodies at 1MB.
const maxBodySize = 1 << 20

// Handler bundles the platform services behind the JSON API.
type Handler struct {
	// InternalAPIKey authorizes server-to-server order creation when
	// no user token is present.
	InternalAPIKey string

	UserSvc     user.Service
	ProductSvc  product.Service
	TagSvc      product.TagService
	CategorySvc category.Service
	OrderSvc    order.Service
	WalletSvc   wallet.Service
	PayLaterSvc paylater.Service
	LoyaltySvc  loyalty.Service
	AddressSvc  address.Service
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func queryString(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func queryInt32(r *http.Request, key string) *int32 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return nil
	}
	out := int32(n)
	return &out
}

func queryFloat(r *http.Request, key string) *float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b := v == "true" || v == "1"
	return &b
}

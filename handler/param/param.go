package param

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.SetAliasTag("json")
	return d
}()

// Binding decode the json body of r into v and validate it with the valid tags
func Binding(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}

// BindQuery decode the url query of r into v
func BindQuery(r *http.Request, v interface{}) error {
	if err := queryDecoder.Decode(v, r.URL.Query()); err != nil {
		return err
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}

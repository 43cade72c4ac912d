package forward

import (
	"reflect"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"github.com/rise-and-shine/docstore/meta"
)

// decodeMeta fills request fields tagged with `meta` from the request
// context metadata. Supported field kinds are string and int64; the tag
// value is the meta context key (e.g. `meta:"tenant_id"`).
func decodeMeta(c *fiber.Ctx, req any) error {
	v := reflect.ValueOf(req).Elem()
	t := v.Type()

	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get("meta")
		if tag == "" {
			continue
		}

		value, ok := c.UserContext().Value(meta.ContextKey(tag)).(string)
		if !ok || value == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() { //nolint:exhaustive // only string and int64 fields carry meta tags
		case reflect.String:
			field.SetString(value)
		case reflect.Int64:
			n, err := cast.ToInt64E(value)
			if err != nil {
				return errx.Wrap(err, errx.WithCode(codeInvalidMetaParams))
			}
			field.SetInt(n)
		default:
			return errx.New("unsupported meta field kind: "+field.Kind().String(),
				errx.WithCode(codeInvalidMetaParams))
		}
	}

	return nil
}

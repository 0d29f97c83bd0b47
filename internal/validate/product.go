// Package validate normalizes and validates loosely typed product payloads.
// Rules run per field and accumulate every violation instead of stopping at
// the first one. Successful coercions (string price, "true"/"false" inStock)
// are written back into the payload so later stages see normalized types.
package validate

import (
	"strconv"
	"strings"
)

// Fields recognized on a product payload, in validation order.
var productFields = []string{"name", "description", "price", "category", "inStock"}

// CreateProduct validates a payload under create intent: name, description,
// price and category are required; inStock is optional. Returns one message
// per violated field, in field order.
func CreateProduct(body map[string]interface{}) []string {
	return checkFields(body, true)
}

// UpdateProduct validates a payload under update intent: every field is
// optional, but supplied fields must be valid and at least one recognized
// field must be present.
func UpdateProduct(body map[string]interface{}) []string {
	errs := checkFields(body, false)
	if len(errs) == 0 && countRecognized(body) == 0 {
		errs = append(errs, "request body is empty")
	}
	return errs
}

func checkFields(body map[string]interface{}, required bool) []string {
	var errs []string
	errs = appendTextErrors(errs, body, "name", required)
	errs = appendTextErrors(errs, body, "description", required)
	errs = appendPriceErrors(errs, body, required)
	errs = appendTextErrors(errs, body, "category", required)
	errs = appendInStockErrors(errs, body)
	return errs
}

// appendTextErrors checks a text field: valid iff present and non-empty after
// trimming. Absence is only an error when the field is required.
func appendTextErrors(errs []string, body map[string]interface{}, field string, required bool) []string {
	v, present := body[field]
	if !present || v == nil {
		if required {
			return append(errs, field+" is required and must be a non-empty string")
		}
		return errs
	}
	if s, ok := v.(string); !ok || strings.TrimSpace(s) == "" {
		if required {
			return append(errs, field+" is required and must be a non-empty string")
		}
		return append(errs, field+" must be a non-empty string")
	}
	return errs
}

// appendPriceErrors checks the price field. Non-numeric values are parsed as a
// number; on success the parsed value replaces the input. Numeric values,
// direct or parsed, must be >= 0.
func appendPriceErrors(errs []string, body map[string]interface{}, required bool) []string {
	v, present := body["price"]
	if !present || v == nil || (required && v == "") {
		if required {
			return append(errs, "price is required")
		}
		return errs
	}

	price, ok := v.(float64)
	if !ok {
		s, isString := v.(string)
		if !isString {
			return append(errs, "price must be a number")
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return append(errs, "price must be a number")
		}
		price = parsed
		body["price"] = parsed
	}

	if price < 0 {
		return append(errs, "price must be >= 0")
	}
	return errs
}

// appendInStockErrors checks inStock: booleans pass through, the literal
// tokens "true" and "false" are coerced, anything else is an error.
func appendInStockErrors(errs []string, body map[string]interface{}) []string {
	v, present := body["inStock"]
	if !present || v == nil {
		return errs
	}
	if _, ok := v.(bool); ok {
		return errs
	}
	switch v {
	case "true":
		body["inStock"] = true
	case "false":
		body["inStock"] = false
	default:
		return append(errs, "inStock must be a boolean")
	}
	return errs
}

func countRecognized(body map[string]interface{}) int {
	n := 0
	for _, field := range productFields {
		if _, present := body[field]; present {
			n++
		}
	}
	return n
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateProductRequiresAllFields(t *testing.T) {
	errs := CreateProduct(map[string]interface{}{})

	assert.Equal(t, []string{
		"name is required and must be a non-empty string",
		"description is required and must be a non-empty string",
		"price is required",
		"category is required and must be a non-empty string",
	}, errs)
}

func TestCreateProductValid(t *testing.T) {
	body := map[string]interface{}{
		"name":        "Laptop",
		"description": "High performance laptop",
		"price":       1200.00,
		"category":    "electronics",
	}

	assert.Empty(t, CreateProduct(body))
}

func TestCreateProductAccumulatesErrors(t *testing.T) {
	body := map[string]interface{}{
		"name":        "   ",
		"description": "ok",
		"price":       -5.0,
		"category":    "",
		"inStock":     "maybe",
	}

	errs := CreateProduct(body)

	assert.Equal(t, []string{
		"name is required and must be a non-empty string",
		"price must be >= 0",
		"category is required and must be a non-empty string",
		"inStock must be a boolean",
	}, errs)
}

func TestCreateProductCoercesStringPrice(t *testing.T) {
	body := map[string]interface{}{
		"name":        "Mouse",
		"description": "Wireless mouse",
		"price":       "25.50",
		"category":    "electronics",
	}

	assert.Empty(t, CreateProduct(body))
	assert.Equal(t, 25.50, body["price"])
}

func TestCreateProductRejectsUnparsablePrice(t *testing.T) {
	body := map[string]interface{}{
		"name":        "Mouse",
		"description": "Wireless mouse",
		"price":       "abc",
		"category":    "electronics",
	}

	assert.Equal(t, []string{"price must be a number"}, CreateProduct(body))
}

func TestCreateProductRejectsNegativeParsedPrice(t *testing.T) {
	body := map[string]interface{}{
		"name":        "Mouse",
		"description": "Wireless mouse",
		"price":       "-3",
		"category":    "electronics",
	}

	assert.Equal(t, []string{"price must be >= 0"}, CreateProduct(body))
}

func TestCreateProductCoercesInStock(t *testing.T) {
	for raw, want := range map[string]bool{"true": true, "false": false} {
		body := map[string]interface{}{
			"name":        "Mouse",
			"description": "Wireless mouse",
			"price":       10.0,
			"category":    "electronics",
			"inStock":     raw,
		}

		assert.Empty(t, CreateProduct(body))
		assert.Equal(t, want, body["inStock"])
	}
}

func TestUpdateProductAllFieldsOptional(t *testing.T) {
	body := map[string]interface{}{"price": 15.0}

	assert.Empty(t, UpdateProduct(body))
}

func TestUpdateProductSuppliedFieldsMustBeValid(t *testing.T) {
	body := map[string]interface{}{
		"name":  "",
		"price": "not-a-number",
	}

	errs := UpdateProduct(body)

	assert.Equal(t, []string{
		"name must be a non-empty string",
		"price must be a number",
	}, errs)
}

func TestUpdateProductRejectsEmptyBody(t *testing.T) {
	assert.Equal(t, []string{"request body is empty"}, UpdateProduct(map[string]interface{}{}))
}

func TestUpdateProductRejectsUnrecognizedFieldsOnly(t *testing.T) {
	body := map[string]interface{}{"color": "red"}

	assert.Equal(t, []string{"request body is empty"}, UpdateProduct(body))
}

package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_client/internal/domain"
)

func fieldMap(t *testing.T, err error) map[string]string {
	t.Helper()
	fields := Fields(err)
	require.NotEmpty(t, fields, "expected validation errors, got %v", err)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidate_Credentials(t *testing.T) {
	v := New(LocaleEN)

	assert.NoError(t, v.Validate(domain.Credentials{Username: "admin", Password: "secret"}))

	fields := fieldMap(t, v.Validate(domain.Credentials{Username: "ad", Password: ""}))
	assert.Equal(t, "Must be at least 3 characters", fields["username"])
	assert.Equal(t, "This field is required", fields["password"])
}

func TestValidate_ProductInput(t *testing.T) {
	v := New(LocaleEN)
	sale := 20.0

	valid := domain.ProductInput{Name: "Green tea", Slug: "green-tea", Price: 10, CategoryID: "c1", Images: []string{"https://cdn.example.com/a.png"}}
	assert.NoError(t, v.Validate(valid))

	invalid := domain.ProductInput{Name: "T", Slug: "Green Tea", Price: 10, SalePrice: &sale, Stock: -1, Images: []string{"not-a-url"}}
	fields := fieldMap(t, v.Validate(invalid))
	assert.Equal(t, "Must be at least 2 characters", fields["name"])
	assert.Equal(t, "Only lowercase letters, digits and hyphens are allowed", fields["slug"])
	assert.Equal(t, "Must be less than price", fields["salePrice"])
	assert.Equal(t, "Must be at least 0", fields["stock"])
	assert.Equal(t, "This field is required", fields["categoryId"])
	assert.Equal(t, "Must be a valid URL", fields["images[0]"])
}

func TestValidate_OrderInputNestedItems(t *testing.T) {
	v := New(LocaleEN)

	input := domain.OrderInput{
		CustomerName:    "An Nguyen",
		CustomerPhone:   "+84 901-234-567",
		ShippingAddress: "12 Le Loi, District 1",
		Items:           []domain.OrderItemInput{{ProductID: "p1", Quantity: 0}},
	}
	fields := fieldMap(t, v.Validate(input))
	assert.Len(t, fields, 1)
	assert.Equal(t, "This field is required", fields["items[0].quantity"])

	input.Items[0].Quantity = 2
	assert.NoError(t, v.Validate(input))

	input.CustomerPhone = "12ab"
	fields = fieldMap(t, v.Validate(input))
	assert.Equal(t, "Must be a valid phone number", fields["customerPhone"])

	input.CustomerPhone = "0901234567"
	input.Items = nil
	fields = fieldMap(t, v.Validate(input))
	assert.Contains(t, fields, "items")
}

func TestValidate_VoucherDates(t *testing.T) {
	v := New(LocaleEN)
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	input := domain.VoucherInput{Code: "SUMMER10", Type: "percent", Value: 10, StartsAt: start, EndsAt: start.Add(-time.Hour)}
	fields := fieldMap(t, v.Validate(input))
	assert.Equal(t, "Must be after startsAt", fields["endsAt"])

	input.EndsAt = start.Add(24 * time.Hour)
	input.Type = "bogus"
	fields = fieldMap(t, v.Validate(input))
	assert.Equal(t, "Must be one of: percent fixed", fields["type"])
}

func TestValidate_VietnameseMessages(t *testing.T) {
	v := New("VI")
	fields := fieldMap(t, v.Validate(domain.Credentials{Username: "", Password: "123"}))
	assert.Equal(t, "Trường này là bắt buộc", fields["username"])
	assert.Equal(t, "Phải có ít nhất 6 ký tự", fields["password"])
}

func TestValidate_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	v := New("fr")
	fields := fieldMap(t, v.Validate(domain.ReorderInput{}))
	assert.Equal(t, "This field is required", fields["ids"])
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: []domain.FieldError{{Field: "name", Message: "This field is required"}}}
	assert.Equal(t, "validation failed: name: This field is required", err.Error())
	assert.Nil(t, Fields(nil))
}

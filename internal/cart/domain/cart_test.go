package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	catalog "github.com/wyfcoding/eshop/internal/catalog/domain"
)

func priced(price string) *catalog.Product {
	return &catalog.Product{Price: decimal.RequireFromString(price)}
}

func TestTotal_EmptyCartIsZero(t *testing.T) {
	cart := &Cart{}
	assert.True(t, cart.Total().IsZero())
}

func TestTotal_SumsLinesAtLiveProductPrice(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{Quantity: 3, Product: priced("10.99")},
		{Quantity: 2, Product: priced("1.99")},
	}}

	assert.True(t, cart.Total().Equal(decimal.RequireFromString("36.95")), "total was %s", cart.Total())
}

func TestTotal_SkipsLinesWithoutLoadedProduct(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{Quantity: 3, Product: priced("10.99")},
		{Quantity: 5, Product: nil},
	}}

	assert.True(t, cart.Total().Equal(decimal.RequireFromString("32.97")))
}

func TestItemOfProduct(t *testing.T) {
	item := CartItem{ProductID: 10, Quantity: 2}
	item.ID = 5
	cart := &Cart{Items: []CartItem{item}}

	assert.NotNil(t, cart.ItemOfProduct(10))
	assert.Nil(t, cart.ItemOfProduct(11))
	assert.NotNil(t, cart.ItemByID(5))
	assert.Nil(t, cart.ItemByID(6))
}

package services

import (
	"context"
	"math"
	"testing"

	"foodorder/entity"
	"foodorder/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSingleStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bhc := f.store(t, f.owner(t, "o1@x.test"), "bhc", 3000)
	pizza := f.store(t, f.owner(t, "o2@x.test"), "pizza", 2000)
	fried := f.menu(t, bhc, "fried", 18000)
	spicy := f.menu(t, bhc, "spicy", 20000)
	cheese := f.menu(t, pizza, "cheese", 15000)
	cust := f.customer(t, "c@x.test", "Seoul", 0)

	view, err := f.cartSvc.AddToCart(ctx, cust.ID, fried.ID, 0)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	view, err = f.cartSvc.AddToCart(ctx, cust.ID, fried.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)

	view, err = f.cartSvc.AddToCart(ctx, cust.ID, spicy.ID, 1)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, bhc.ID, view.StoreID)
	assert.Equal(t, int64(3000), view.ShippingFee)
	assert.Equal(t, int64(18000*3+20000+3000), view.TotalPrice)

	_, err = f.cartSvc.AddToCart(ctx, cust.ID, cheese.ID, 1)
	assertAppErr(t, err, apperr.KindConflict, "cart already has menus from another store")

	_, err = f.cartSvc.AddToCart(ctx, cust.ID, fried.ID, -1)
	assertAppErr(t, err, apperr.KindBadRequest, "quantity must be between 1 and 999")
	_, err = f.cartSvc.AddToCart(ctx, cust.ID, 999, 1)
	assertAppErr(t, err, apperr.KindNotFound, "menu not found")

	// emptying the cart unlocks other stores
	require.NoError(t, f.cartSvc.ClearCart(ctx, cust.ID))
	view, err = f.cartSvc.GetCart(ctx, cust.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalPrice)

	view, err = f.cartSvc.AddToCart(ctx, cust.ID, cheese.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(17000), view.TotalPrice)
}

func TestCartSoldOutMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.store(t, f.owner(t, "o@x.test"), "bhc", 0)
	m := &entity.Menu{StoreID: st.ID, MenuName: "gone", Price: 1000, Status: entity.MenuSoldOut}
	require.NoError(t, f.db.Create(m).Error)
	cust := f.customer(t, "c@x.test", "", 0)

	_, err := f.cartSvc.AddToCart(ctx, cust.ID, m.ID, 1)
	assertAppErr(t, err, apperr.KindBadRequest, "menu is sold out")
}

func TestCartUpdateAndRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.store(t, f.owner(t, "o@x.test"), "bhc", 1000)
	m := f.menu(t, st, "fried", 10000)
	alice := f.customer(t, "a@x.test", "", 0)
	bob := f.customer(t, "b@x.test", "", 0)

	view, err := f.cartSvc.AddToCart(ctx, alice.ID, m.ID, 1)
	require.NoError(t, err)
	cartID := view.Items[0].CartID

	_, err = f.cartSvc.UpdateCartQuantity(ctx, alice.ID, cartID, 0)
	assertAppErr(t, err, apperr.KindBadRequest, "quantity must be between 1 and 999")
	_, err = f.cartSvc.UpdateCartQuantity(ctx, bob.ID, cartID, 4)
	assertAppErr(t, err, apperr.KindNotFound, "cart item not found")

	view, err = f.cartSvc.UpdateCartQuantity(ctx, alice.ID, cartID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(41000), view.TotalPrice)

	_, err = f.cartSvc.RemoveCartItem(ctx, bob.ID, cartID)
	assertAppErr(t, err, apperr.KindNotFound, "cart item not found")
	view, err = f.cartSvc.RemoveCartItem(ctx, alice.ID, cartID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartQuantityBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.store(t, f.owner(t, "o@x.test"), "bhc", 0)
	m := f.menu(t, st, "fried", 10000)
	cust := f.customer(t, "c@x.test", "", 0)

	for _, qty := range []int{-3, MaxQuantity + 1, 1_000_000_000_000_000} {
		_, err := f.cartSvc.AddToCart(ctx, cust.ID, m.ID, qty)
		assertAppErr(t, err, apperr.KindBadRequest, "quantity must be between 1 and 999")
	}

	view, err := f.cartSvc.AddToCart(ctx, cust.ID, m.ID, MaxQuantity)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(10000*MaxQuantity), view.TotalPrice)

	// merging into an existing line respects the same bound
	_, err = f.cartSvc.AddToCart(ctx, cust.ID, m.ID, 1)
	assertAppErr(t, err, apperr.KindBadRequest, "quantity must be between 1 and 999")

	cartID := view.Items[0].CartID
	_, err = f.cartSvc.UpdateCartQuantity(ctx, cust.ID, cartID, 1_000_000_000_000_000)
	assertAppErr(t, err, apperr.KindBadRequest, "quantity must be between 1 and 999")

	view, err = f.cartSvc.GetCart(ctx, cust.ID)
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, view.Items[0].Quantity)
}

func TestGetCartTotalOverflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := f.store(t, f.owner(t, "o@x.test"), "bhc", 0)
	m := f.menu(t, st, "gold", math.MaxInt64/2)
	cust := f.customer(t, "c@x.test", "", 0)

	_, err := f.cartSvc.AddToCart(ctx, cust.ID, m.ID, 3)
	assertAppErr(t, err, apperr.KindBadRequest, "order total is out of range")
}

package collection

import (
	"testing"

	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/item"
	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pkgItem(id, price string, qty int64, taxIDs, discountIDs []string) item.Item {
	return item.Item{
		ID:          id,
		UnitPrice:   d(price),
		Quantity:    qty,
		TaxIDs:      taxIDs,
		DiscountIDs: discountIDs,
		Meta:        item.PackageMeta{PackageID: "pkg_" + id, PackageName: id},
	}
}

type CollectionSuite struct {
	suite.Suite

	vat       *tax.TaxRule
	state     *tax.TaxRule
	embedded  *tax.TaxRule
	percent10 *coupon.Discount
	fixed20   *coupon.Discount
}

func TestCollection(t *testing.T) {
	suite.Run(t, new(CollectionSuite))
}

func (s *CollectionSuite) SetupTest() {
	s.vat = &tax.TaxRule{ID: "tax_vat", Level: types.TaxLevel1, Rate: d("10"), Type: types.TaxTypeExclusive, Status: types.StatusActive}
	s.state = &tax.TaxRule{ID: "tax_state", Level: types.TaxLevel2, Rate: d("5"), Type: types.TaxTypeExclusive, Cascade: true, Status: types.StatusActive}
	s.embedded = &tax.TaxRule{ID: "tax_gst", Level: types.TaxLevel1, Rate: d("25"), Type: types.TaxTypeInclusiveCalculated, Status: types.StatusActive}
	s.percent10 = &coupon.Discount{ID: "disc_pct", Code: "TEN", Type: types.DiscountTypePercent, Value: d("10")}
	s.fixed20 = &coupon.Discount{ID: "disc_fixed", Code: "TWENTY", Type: types.DiscountTypeFixed, Value: d("20")}
}

func (s *CollectionSuite) mustNew(items []item.Item) *Collection {
	c, err := New(items,
		[]*tax.TaxRule{s.vat, s.state, s.embedded},
		[]*coupon.Discount{s.percent10, s.fixed20})
	s.Require().NoError(err)
	return c
}

func (s *CollectionSuite) TestEndToEnd() {
	c := s.mustNew([]item.Item{
		pkgItem("basic", "100", 1, []string{"tax_vat"}, []string{"disc_pct"}),
	})

	s.True(d("100").Equal(c.Subtotal()), c.Subtotal().String())
	s.True(d("10").Equal(c.TaxAmount()))
	s.True(d("10").Equal(c.DiscountAmount()))
	s.True(d("90").Equal(c.TotalAfterDiscount()))
	s.True(d("110").Equal(c.TotalAfterTax()))
	s.True(d("110").Equal(c.Total()))
	s.True(d("100").Equal(c.TotalWithoutExclusiveTax()))
}

func (s *CollectionSuite) TestIdempotentAndOrderIndependent() {
	items := []item.Item{
		pkgItem("a", "60", 1, []string{"tax_vat", "tax_state"}, []string{"disc_fixed", "disc_pct"}),
		pkgItem("b", "15", 2, []string{"tax_gst"}, []string{"disc_fixed"}),
	}

	isolated := func(f func(*Collection) decimal.Decimal) decimal.Decimal {
		return f(s.mustNew(items))
	}
	queries := map[string]func(*Collection) decimal.Decimal{
		"subtotal":           (*Collection).Subtotal,
		"total":              (*Collection).Total,
		"totalAfterTax":      (*Collection).TotalAfterTax,
		"totalAfterDiscount": (*Collection).TotalAfterDiscount,
		"taxAmount":          (*Collection).TaxAmount,
		"discountAmount":     (*Collection).DiscountAmount,
	}

	expected := make(map[string]decimal.Decimal, len(queries))
	for name, q := range queries {
		expected[name] = isolated(q)
	}

	c := s.mustNew(items)
	for round := 0; round < 3; round++ {
		for _, name := range []string{"discountAmount", "taxAmount", "totalAfterDiscount", "subtotal", "totalAfterDiscount", "total", "totalAfterTax", "discountAmount"} {
			got := queries[name](c)
			s.True(expected[name].Equal(got), "%s round %d: want %s got %s", name, round, expected[name], got)
		}
	}
}

func (s *CollectionSuite) TestSharedFixedDiscountCountedOnce() {
	c := s.mustNew([]item.Item{
		pkgItem("a", "50", 1, nil, []string{"disc_fixed"}),
		pkgItem("b", "50", 1, nil, []string{"disc_fixed"}),
	})

	s.True(d("20").Equal(c.DiscountAmount()), c.DiscountAmount().String())
	s.True(d("20").Equal(c.DiscountAmount()))
	s.True(d("20").Equal(c.DiscountAmountFor("disc_fixed")))
	s.True(d("80").Equal(c.TotalAfterDiscount()))
}

func (s *CollectionSuite) TestFixedDiscountSpillsAcrossItems() {
	c := s.mustNew([]item.Item{
		pkgItem("a", "12", 1, nil, []string{"disc_fixed"}),
		pkgItem("b", "50", 1, nil, []string{"disc_fixed"}),
	})

	bd := c.Breakdown()
	s.Require().Len(bd.Items, 2)
	s.True(d("12").Equal(bd.Items[0].DiscountAmount))
	s.True(bd.Items[0].TotalAfterDiscount.IsZero())
	s.True(d("8").Equal(bd.Items[1].DiscountAmount))
	s.True(d("20").Equal(bd.Totals.DiscountAmount))
}

func (s *CollectionSuite) TestDiscountNeverBelowZero() {
	c := s.mustNew([]item.Item{
		pkgItem("a", "5", 1, nil, []string{"disc_pct", "disc_fixed"}),
	})
	s.True(d("5").Equal(c.DiscountAmount()))
	s.True(c.TotalAfterDiscount().IsZero())
}

func (s *CollectionSuite) TestInclusiveCalculatedSubtotal() {
	c := s.mustNew([]item.Item{
		pkgItem("a", "125", 1, []string{"tax_gst"}, nil),
	})
	s.True(d("100").Equal(c.Subtotal()))
	s.True(d("25").Equal(c.TaxAmount()))
	s.True(d("125").Equal(c.Subtotal().Add(c.TaxAmount())))
	s.True(d("100").Equal(c.Total()))
	s.True(d("125").Equal(c.TotalAfterTax()))
}

func (s *CollectionSuite) TestTotalExcludesEmbeddedTax() {
	c := s.mustNew([]item.Item{
		pkgItem("a", "125", 1, []string{"tax_gst"}, nil),
		pkgItem("b", "100", 1, []string{"tax_vat"}, nil),
	})
	// 100 + (100 + 10)
	s.True(d("210").Equal(c.Total()))
	// 125 + 110
	s.True(d("235").Equal(c.TotalAfterTax()))
	s.True(d("225").Equal(c.TotalWithoutExclusiveTax()))

	bd := c.Breakdown()
	s.Require().Len(bd.Items, 2)
	s.True(d("100").Equal(bd.Items[0].Total))
	s.True(d("125").Equal(bd.Items[0].TotalAfterTax))
	s.True(bd.Items[1].Total.Equal(bd.Items[1].TotalAfterTax))
}

func (s *CollectionSuite) TestExclusiveConservation() {
	c := s.mustNew([]item.Item{
		pkgItem("a", "80", 1, []string{"tax_vat"}, nil),
	})
	s.True(c.Subtotal().Mul(d("1.1")).Equal(c.Total()))
}

func (s *CollectionSuite) TestCascadePerRule() {
	c := s.mustNew([]item.Item{
		pkgItem("a", "100", 1, []string{"tax_vat", "tax_state"}, nil),
		pkgItem("b", "100", 1, []string{"tax_vat"}, nil),
	})
	s.True(d("20").Equal(c.TaxAmountFor("tax_vat")))
	s.True(d("5.5").Equal(c.TaxAmountFor("tax_state")))
	s.True(d("25.5").Equal(c.TaxAmount()))
}

func (s *CollectionSuite) TestZeroPriceItem() {
	zero := pkgItem("a", "0", 1, []string{"tax_vat"}, []string{"disc_fixed"})
	c := s.mustNew([]item.Item{
		zero,
		pkgItem("b", "30", 1, nil, []string{"disc_fixed"}),
	})
	bd := c.Breakdown()
	s.True(bd.Items[0].Total.IsZero())
	s.True(bd.Items[0].DiscountAmount.IsZero())
	s.Empty(bd.Items[0].AppliedDiscounts)
	s.True(d("20").Equal(c.DiscountAmount()))
}

func (s *CollectionSuite) TestEmpty() {
	c := s.mustNew(nil)
	s.True(c.Subtotal().IsZero())
	s.True(c.Total().IsZero())
	s.Equal(0, c.Len())
}

func TestNewRejectsDanglingReferences(t *testing.T) {
	_, err := New([]item.Item{pkgItem("a", "10", 1, []string{"missing"}, nil)}, nil, nil)
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ErrSystem))

	_, err = New([]item.Item{pkgItem("a", "10", 1, nil, []string{"missing"})}, nil, nil)
	require.Error(t, err)

	_, err = New([]item.Item{pkgItem("a", "10", -1, nil, nil)}, nil, nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

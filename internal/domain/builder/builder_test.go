package builder

import (
	"testing"
	"time"

	"github.com/flexprice/pricing/internal/domain/coupon"
	"github.com/flexprice/pricing/internal/domain/item"
	"github.com/flexprice/pricing/internal/domain/proration"
	"github.com/flexprice/pricing/internal/domain/tax"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BuilderSuite struct {
	suite.Suite
	builder *Builder
	now     time.Time
	vat     *tax.TaxRule
	save10  *coupon.Coupon
}

func TestBuilder(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func (s *BuilderSuite) SetupTest() {
	s.builder = New(
		proration.NewModifier(proration.NewCalculator(types.ProrationStrategyDayBased, time.UTC)),
		item.DescribeOptions{DateFormat: "2006-01-02"},
	)
	s.now = time.Date(2024, 4, 16, 0, 0, 0, 0, time.UTC)
	s.vat = &tax.TaxRule{ID: "tax_vat", Name: "VAT", Level: types.TaxLevel1, Rate: decimal.NewFromInt(10), Type: types.TaxTypeExclusive, Status: types.StatusActive}
	s.save10 = &coupon.Coupon{
		ID:     "coupon_save10",
		Code:   "SAVE10",
		Status: types.StatusActive,
		Amounts: map[string]coupon.Amount{
			"USD": {Type: types.DiscountTypePercent, Value: decimal.NewFromInt(10)},
		},
		Packages:  map[string]coupon.PackageTerms{"pkg_basic": nil},
		ValidFrom: lo.ToPtr(s.now.AddDate(0, -1, 0)),
		ValidTo:   lo.ToPtr(s.now.AddDate(0, 1, 0)),
	}
}

func (s *BuilderSuite) basicRecord() Record {
	return Record{
		ID:          "rec_basic",
		Type:        types.ItemTypePackage,
		PackageID:   "pkg_basic",
		PackageName: "Web Hosting Basic",
		Label:       "example.com",
		UnitPrice:   decimal.NewFromInt(100),
		SetupFee:    decimal.NewFromInt(15),
		CancelFee:   decimal.NewFromInt(5),
		Currency:    "USD",
		Quantity:    1,
		Term:        1,
		Period:      types.BILLING_PERIOD_MONTH,
		Taxable:     true,
	}
}

func (s *BuilderSuite) opts() Options {
	return Options{Currency: "USD", ApplyDate: s.now}
}

func (s *BuilderSuite) TestEndToEnd() {
	res, err := s.builder.Build([]Record{s.basicRecord()}, []*tax.TaxRule{s.vat}, []*coupon.Coupon{s.save10}, s.opts())
	s.Require().NoError(err)

	c := res.Collection
	s.True(decimal.NewFromInt(100).Equal(c.Subtotal()))
	s.True(decimal.NewFromInt(10).Equal(c.TaxAmount()))
	s.True(decimal.NewFromInt(10).Equal(c.DiscountAmount()))
	s.True(decimal.NewFromInt(90).Equal(c.TotalAfterDiscount()))
	s.True(decimal.NewFromInt(110).Equal(c.TotalAfterTax()))

	s.Require().Len(res.Coupons, 1)
	s.True(res.Coupons[0].Applies)
	s.NotEmpty(res.Coupons[0].DiscountID)
	s.Equal("Web Hosting Basic - example.com", c.Items()[0].Description)
}

func (s *BuilderSuite) TestCycles() {
	opts := s.opts()
	opts.Cycles = 3
	res, err := s.builder.Build([]Record{s.basicRecord()}, nil, nil, opts)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(300).Equal(res.Collection.Subtotal()))
}

func (s *BuilderSuite) TestFees() {
	opts := s.opts()
	opts.IncludeSetupFees = true
	opts.IncludeCancelFees = true

	res, err := s.builder.Build([]Record{s.basicRecord()}, []*tax.TaxRule{s.vat}, []*coupon.Coupon{s.save10}, opts)
	s.Require().NoError(err)

	items := res.Collection.Items()
	s.Require().Len(items, 3)
	s.Equal(types.ItemTypeSetup, items[1].Type())
	s.Equal(types.ItemTypeCancel, items[2].Type())
	s.Empty(items[1].DiscountIDs)
	s.Equal("Web Hosting Basic - Setup Fee", items[1].Description)

	s.True(decimal.NewFromInt(120).Equal(res.Collection.Subtotal()))
	s.True(decimal.NewFromInt(10).Equal(res.Collection.DiscountAmount()))

	opts.Recur = true
	s.save10.Recurs = true
	res, err = s.builder.Build([]Record{s.basicRecord()}, nil, []*coupon.Coupon{s.save10}, opts)
	s.Require().NoError(err)
	s.Equal(2, res.Collection.Len())
}

func (s *BuilderSuite) TestInactiveTaxesSkipped() {
	inactive := &tax.TaxRule{ID: "tax_old", Level: types.TaxLevel2, Rate: decimal.NewFromInt(50), Type: types.TaxTypeExclusive, Status: types.StatusInactive}
	res, err := s.builder.Build([]Record{s.basicRecord()}, []*tax.TaxRule{s.vat, inactive}, nil, s.opts())
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(10).Equal(res.Collection.TaxAmount()))
}

func (s *BuilderSuite) TestUntaxedRecord() {
	r := s.basicRecord()
	r.Taxable = false
	res, err := s.builder.Build([]Record{r}, []*tax.TaxRule{s.vat}, nil, s.opts())
	s.Require().NoError(err)
	s.True(res.Collection.TaxAmount().IsZero())
}

func (s *BuilderSuite) TestIneligibleCouponReported() {
	s.save10.Status = types.StatusInactive
	res, err := s.builder.Build([]Record{s.basicRecord()}, nil, []*coupon.Coupon{s.save10}, s.opts())
	s.Require().NoError(err)
	s.Require().Len(res.Coupons, 1)
	s.False(res.Coupons[0].Applies)
	s.Equal(types.IneligibleReasonInactive, res.Coupons[0].Reason)
	s.True(res.Collection.DiscountAmount().IsZero())
}

func (s *BuilderSuite) TestCouponMissingCurrency() {
	opts := s.opts()
	opts.Currency = "EUR"
	r := s.basicRecord()
	r.Currency = "EUR"
	_, err := s.builder.Build([]Record{r}, nil, []*coupon.Coupon{s.save10}, opts)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BuilderSuite) TestCurrencyMismatch() {
	r := s.basicRecord()
	r.Currency = "GBP"
	_, err := s.builder.Build([]Record{r}, nil, nil, s.opts())
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BuilderSuite) TestNegativeQuantity() {
	r := s.basicRecord()
	r.Quantity = -1
	_, err := s.builder.Build([]Record{r}, nil, nil, s.opts())
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BuilderSuite) TestOptionDiscount() {
	option := Record{
		ID:          "rec_ip",
		Type:        types.ItemTypeOption,
		PackageID:   "pkg_basic",
		OptionName:  "Extra IP",
		OptionValue: "IPv4",
		UnitPrice:   decimal.NewFromInt(20),
		Quantity:    1,
	}

	res, err := s.builder.Build([]Record{s.basicRecord(), option}, nil, []*coupon.Coupon{s.save10}, s.opts())
	s.Require().NoError(err)
	s.Empty(res.Collection.Items()[1].DiscountIDs)
	s.True(decimal.NewFromInt(10).Equal(res.Collection.DiscountAmount()))

	s.save10.AppliesToOptions = true
	res, err = s.builder.Build([]Record{s.basicRecord(), option}, nil, []*coupon.Coupon{s.save10}, s.opts())
	s.Require().NoError(err)
	s.Len(res.Collection.Items()[1].DiscountIDs, 1)
	s.True(decimal.NewFromInt(12).Equal(res.Collection.DiscountAmount()))
}

func (s *BuilderSuite) TestExplicitProration() {
	opts := s.opts()
	opts.IncludeSetupFees = true
	opts.ProrateStartDate = lo.ToPtr(s.now)
	opts.ProrateEndDate = lo.ToPtr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))

	res, err := s.builder.Build([]Record{s.basicRecord()}, nil, nil, opts)
	s.Require().NoError(err)

	items := res.Collection.Items()
	s.True(decimal.NewFromInt(50).Equal(items[0].UnitPrice), items[0].UnitPrice.String())
	s.True(items[0].Meta.GetLifecycle().Prorated)
	s.True(decimal.NewFromInt(15).Equal(items[1].UnitPrice))
	s.False(items[1].Meta.GetLifecycle().Prorated)
}

func (s *BuilderSuite) TestZeroProrationWindow() {
	opts := s.opts()
	opts.ProrateStartDate = lo.ToPtr(s.now)
	opts.ProrateEndDate = lo.ToPtr(s.now)

	other := s.basicRecord()
	other.ID = "rec_other"
	other.Period = types.BILLING_PERIOD_ONETIME

	res, err := s.builder.Build([]Record{s.basicRecord(), other}, []*tax.TaxRule{s.vat}, nil, opts)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(100).Equal(res.Collection.Subtotal()))
	s.True(decimal.NewFromInt(10).Equal(res.Collection.TaxAmount()))
}

func (s *BuilderSuite) TestPolicyProration() {
	r := s.basicRecord()
	r.ProrataDay = 1

	opts := s.opts()
	opts.StartDate = lo.ToPtr(s.now)

	res, err := s.builder.Build([]Record{r}, nil, nil, opts)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(50).Equal(res.Collection.Subtotal()))
}

func (s *BuilderSuite) TestProrateEndBeforeStart() {
	opts := s.opts()
	opts.ProrateStartDate = lo.ToPtr(s.now)
	opts.ProrateEndDate = lo.ToPtr(s.now.AddDate(0, 0, -1))
	_, err := s.builder.Build([]Record{s.basicRecord()}, nil, nil, opts)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
}

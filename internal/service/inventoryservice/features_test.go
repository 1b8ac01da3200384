package inventoryservice_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"stockkeeper/internal/domain"
	apperror "stockkeeper/internal/errors"
	"stockkeeper/internal/pkg/logger"
	"stockkeeper/internal/repository/itemrepo"
	"stockkeeper/internal/service/inventoryservice"
)

type inventoryTestContext struct {
	repo    *itemrepo.MemoryRepository
	svc     *inventoryservice.Service
	before  map[domain.ItemKey]int
	result  domain.BatchResult
	missing *apperror.MissingItemsError
	err     error
}

func (c *inventoryTestContext) reset() {
	c.repo = itemrepo.NewMemoryRepository()
	c.svc = inventoryservice.NewService(c.repo, logger.NewNop())
	c.before = nil
	c.result = domain.BatchResult{}
	c.missing = nil
	c.err = nil
}

func (c *inventoryTestContext) theCatalogContains(itemName, companyName string, quantity int) error {
	_, err := c.repo.Create(context.Background(), domain.Item{
		ItemName:     itemName,
		CompanyName:  companyName,
		Quantity:     quantity,
		PricePerItem: decimal.NewFromInt(1),
	})
	return err
}

func (c *inventoryTestContext) iSubmitTheBatch(doc *godog.DocString) error {
	var items []interface{}
	dec := json.NewDecoder(bytes.NewReader([]byte(doc.Content)))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		return fmt.Errorf("invalid batch in feature: %w", err)
	}

	c.before = c.repo.Snapshot()
	c.result, c.err = c.svc.UpdateInventory(context.Background(), items)
	if c.err != nil {
		errors.As(c.err, &c.missing)
	}
	return nil
}

func (c *inventoryTestContext) theBatchIsAccepted() error {
	if c.err != nil {
		return fmt.Errorf("expected accepted batch but got error: %v", c.err)
	}
	return nil
}

func (c *inventoryTestContext) outcomeIs(n int, status, message string) error {
	if n < 1 || n > len(c.result.Updates) {
		return fmt.Errorf("outcome %d out of range (%d outcomes)", n, len(c.result.Updates))
	}
	got := c.result.Updates[n-1]
	if got.Status != status || got.Message != message {
		return fmt.Errorf("outcome %d: expected %s/%q, got %s/%q", n, status, message, got.Status, got.Message)
	}
	return nil
}

func (c *inventoryTestContext) theQuantityIs(itemName, companyName string, quantity int) error {
	got := c.repo.Snapshot()[domain.ItemKey{ItemName: itemName, CompanyName: companyName}]
	if got != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, got)
	}
	return nil
}

func (c *inventoryTestContext) theBatchIsRejectedWith(count int) error {
	if c.missing == nil {
		return fmt.Errorf("expected existence rejection, got err=%v", c.err)
	}
	if len(c.missing.Details) != count {
		return fmt.Errorf("expected %d missing items, got %d", count, len(c.missing.Details))
	}
	return nil
}

func (c *inventoryTestContext) missingDetail(n int) (domain.MissingItemDetail, error) {
	if c.missing == nil || n < 1 || n > len(c.missing.Details) {
		return domain.MissingItemDetail{}, fmt.Errorf("missing item %d not reported", n)
	}
	return c.missing.Details[n-1], nil
}

func (c *inventoryTestContext) missingItemIs(n int, itemName, companyName, msg string) error {
	d, err := c.missingDetail(n)
	if err != nil {
		return err
	}
	if d.ItemName != itemName || d.CompanyName != companyName || d.Error != msg {
		return fmt.Errorf("unexpected detail %+v", d)
	}
	return nil
}

func (c *inventoryTestContext) missingItemHasError(n int, msg string) error {
	d, err := c.missingDetail(n)
	if err != nil {
		return err
	}
	if d.Error != msg {
		return fmt.Errorf("expected error %q, got %q", msg, d.Error)
	}
	return nil
}

func (c *inventoryTestContext) theCatalogIsUnchanged() error {
	if after := c.repo.Snapshot(); !reflect.DeepEqual(c.before, after) {
		return fmt.Errorf("catalog changed: before %v, after %v", c.before, after)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &inventoryTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^the catalog contains "([^"]*)" from "([^"]*)" with quantity (\d+)$`, tc.theCatalogContains)

	// When
	ctx.Step(`^I submit the batch:$`, tc.iSubmitTheBatch)

	// Then
	ctx.Step(`^the batch is accepted$`, tc.theBatchIsAccepted)
	ctx.Step(`^outcome (\d+) is "([^"]*)" with message "([^"]*)"$`, tc.outcomeIs)
	ctx.Step(`^the quantity of "([^"]*)" from "([^"]*)" is (\d+)$`, tc.theQuantityIs)
	ctx.Step(`^the batch is rejected with (\d+) missing items?$`, tc.theBatchIsRejectedWith)
	ctx.Step(`^missing item (\d+) is "([^"]*)" from "([^"]*)" with error "([^"]*)"$`, tc.missingItemIs)
	ctx.Step(`^missing item (\d+) has error "([^"]*)"$`, tc.missingItemHasError)
	ctx.Step(`^the catalog is unchanged$`, tc.theCatalogIsUnchanged)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizplan-backend/models"
)

func TestParseFinancesDataEmptyInput(t *testing.T) {
	data := models.ParseFinancesData(nil)
	assert.NotNil(t, data.Documents)
	assert.NotNil(t, data.Expenses)
	assert.NotNil(t, data.Budgets)
	assert.NotNil(t, data.CashflowEntries)
	assert.NotNil(t, data.BankAccounts)
	assert.NotNil(t, data.Forecasts)
	assert.NotNil(t, data.Scenarios)
	assert.Empty(t, data.Documents)
}

func TestParseFinancesDataMalformedBlob(t *testing.T) {
	// Truncated JSON degrades to the full skeleton.
	data := models.ParseFinancesData([]byte(`{"documents": "not an array"`))
	assert.Empty(t, data.Documents)
	assert.NotNil(t, data.Expenses)
}

func TestParseFinancesDataMalformedCollectionKeepsSiblings(t *testing.T) {
	data := models.ParseFinancesData([]byte(`{
		"documents": "oops",
		"expenses": [{"id": "e1", "amount": 12.5}],
		"bankAccounts": [{"id": "acc-1", "balance": 100}]
	}`))

	assert.NotNil(t, data.Documents)
	assert.Empty(t, data.Documents)
	require.Len(t, data.Expenses, 1)
	assert.Equal(t, "e1", data.Expenses[0].Id)
	require.Len(t, data.BankAccounts, 1)
	assert.InDelta(t, 100.0, data.BankAccounts[0].Balance, 1e-9)
	assert.NotNil(t, data.Scenarios)
}

func TestParseFinancesDataMissingAndNullCollections(t *testing.T) {
	data := models.ParseFinancesData([]byte(`{"documents": null, "expenses": [{"id":"e1","amount":12.5}]}`))
	assert.NotNil(t, data.Documents)
	assert.Empty(t, data.Documents)
	require.Len(t, data.Expenses, 1)
	assert.Equal(t, "e1", data.Expenses[0].Id)
	assert.InDelta(t, 12.5, data.Expenses[0].Amount, 1e-9)
	assert.NotNil(t, data.Scenarios)
}

func TestParseFinancesDataIgnoresUnknownKeys(t *testing.T) {
	data := models.ParseFinancesData([]byte(`{"documents": [], "futureFeature": {"x": 1}}`))
	assert.NotNil(t, data.Documents)
}

func TestFinancesDataEmptySkeletonJSON(t *testing.T) {
	raw, err := json.Marshal(models.NewFinancesData())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"documents": [], "expenses": [], "budgets": [],
		"cashflowEntries": [], "bankAccounts": [],
		"forecasts": [], "scenarios": []
	}`, string(raw))
}

func TestBusinessPlanFinancesRoundTrip(t *testing.T) {
	plan := &models.BusinessPlan{Id: "p1", UserId: "u1", Name: "test"}

	tree := models.NewFinancesData()
	tree.Documents = append(tree.Documents, models.ServiceDocument{
		Id: "doc-1", Type: "invoice", Status: "sent", Total: 100,
	})
	require.NoError(t, plan.SetFinancesTree(tree))

	back := plan.FinancesTree()
	require.Len(t, back.Documents, 1)
	assert.Equal(t, "doc-1", back.Documents[0].Id)
	assert.Equal(t, "sent", back.Documents[0].Status)
}

func TestBusinessPlanCloneIsDeep(t *testing.T) {
	plan := &models.BusinessPlan{Id: "p1", UserId: "u1", Name: "original"}
	tree := models.NewFinancesData()
	tree.BankAccounts = append(tree.BankAccounts, models.ServiceBankAccount{Id: "acc-1", Balance: 100})
	require.NoError(t, plan.SetFinancesTree(tree))

	cp := plan.Clone()
	// Id and UserId are json:"-" and must survive the round-trip copy.
	assert.Equal(t, plan.Id, cp.Id)
	assert.Equal(t, plan.UserId, cp.UserId)

	cpTree := cp.FinancesTree()
	cpTree.BankAccounts[0].Balance = 999
	require.NoError(t, cp.SetFinancesTree(cpTree))

	assert.InDelta(t, 100.0, plan.FinancesTree().BankAccounts[0].Balance, 1e-9)
	assert.Equal(t, "original", cp.Name)
}

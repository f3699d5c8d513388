package reports

import (
	"time"

	"github.com/dimitrizarkua/jobs_backend/models"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func revenueAccount(id int, name string, typeName string) *models.GLAccount {
	return &models.GLAccount{
		ID:   id,
		Name: name,
		AccountType: &models.AccountType{
			Name:  typeName,
			Group: &models.AccountTypeGroup{Name: models.AccountGroupRevenue},
		},
	}
}

func assetAccount(id int, name string) *models.GLAccount {
	return &models.GLAccount{
		ID:   id,
		Name: name,
		AccountType: &models.AccountType{
			Name:  "Current Asset",
			Group: &models.AccountTypeGroup{Name: models.AccountGroupAsset},
		},
	}
}

func lineItem(account *models.GLAccount, quantity string, unitCost string) models.FinancialDocumentItem {
	item := models.FinancialDocumentItem{
		Quantity: d(quantity),
		UnitCost: d(unitCost),
	}
	if account != nil {
		item.GLAccountId = account.ID
		item.GLAccount = account
	}
	return item
}

func paidInvoice(id int, contactId int, date string, due string, amount string, paid string) *models.Invoice {
	invoice := &models.Invoice{
		ID:                 id,
		RecipientContactId: contactId,
		Date:               day(date),
		DueAt:              day(due),
		Items: []models.FinancialDocumentItem{
			lineItem(revenueAccount(1, "Restoration Revenue", "Revenue"), "1", amount),
		},
	}
	if paid != "0" {
		invoice.Payments = []models.InvoicePayment{{InvoiceId: id, Amount: d(paid)}}
	}
	return invoice
}

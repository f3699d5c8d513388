package models

import (
	"log"

	"github.com/dimitrizarkua/jobs_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Location{}, &AccountingOrganization{}, &AccountingOrganizationLocation{},
		&Contact{}, &Job{}, &Tag{}, &DocumentTag{},
		&AccountTypeGroup{}, &AccountType{}, &GLAccount{},
		&Transaction{}, &TransactionRecord{},
		&TaxRate{},
		&Invoice{}, &CreditNote{}, &PurchaseOrder{},
		&FinancialDocumentItem{}, &DocumentStatus{},
		&InvoicePayment{}, &ForwardedPaymentInvoice{},
		&LabourUsage{}, &LahaCompensation{}, &EquipmentUsage{}, &MaterialUsage{}, &Reimbursement{},
		&AssessmentReport{}, &AssessmentReportItem{},
		&Attachment{}, &OutboxRecord{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}

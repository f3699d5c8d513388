package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

type DocumentStatusValue string

const (
	DocumentStatusDraft    DocumentStatusValue = "draft"
	DocumentStatusPending  DocumentStatusValue = "pending_approval"
	DocumentStatusApproved DocumentStatusValue = "approved"
	DocumentStatusVoided   DocumentStatusValue = "voided"
)

func (s DocumentStatusValue) Valid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPending, DocumentStatusApproved, DocumentStatusVoided:
		return true
	}
	return false
}

// DocumentType discriminates polymorphic item/tag/status rows.
type DocumentType string

const (
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypeCreditNote    DocumentType = "credit_note"
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
)

func (d DocumentType) Valid() bool {
	switch d {
	case DocumentTypeInvoice, DocumentTypeCreditNote, DocumentTypePurchaseOrder:
		return true
	}
	return false
}

// Account-type-group names form the top level of the chart-of-accounts
// classification. Trial balance only reports these three groups.
const (
	AccountGroupRevenue   = "Revenue"
	AccountGroupAsset     = "Asset"
	AccountGroupLiability = "Liability"
)

type ContactType string

const (
	ContactTypePerson  ContactType = "person"
	ContactTypeCompany ContactType = "company"
)

type OutboxPublishStatus string

const (
	OutboxPublishStatusPending   OutboxPublishStatus = "PENDING"
	OutboxPublishStatusPublished OutboxPublishStatus = "PUBLISHED"
	OutboxPublishStatusDead      OutboxPublishStatus = "DEAD"
)

// DateString is a calendar date carried over the API as "2006-01-02".
type DateString time.Time

const dateStringLayout = "2006-01-02"

func (t DateString) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(t).Format(dateStringLayout))), nil
}

func (t *DateString) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("date must be a string")
	}
	parsed, err := time.Parse(dateStringLayout, str)
	if err != nil {
		return errors.New("error parsing date, expected YYYY-MM-DD")
	}
	*t = DateString(parsed)
	return nil
}

func (t DateString) String() string {
	return time.Time(t).Format(dateStringLayout)
}

// StartOfDayUTCTime rebases the date to 00:00:00 in the given timezone,
// converted to UTC.
func (t *DateString) StartOfDayUTCTime(timezone string) error {
	if t == nil {
		return nil
	}

	localTime := time.Time(*t)

	if timezone == "" {
		timezone = "Australia/Brisbane"
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}

	localTimeInZone := time.Date(
		localTime.Year(), localTime.Month(), localTime.Day(),
		0, 0, 0, 0,
		location,
	)
	*t = DateString(localTimeInZone.In(time.UTC))
	return nil
}

// EndOfDayUTCTime rebases the date to 23:59:59 in the given timezone,
// converted to UTC.
func (t *DateString) EndOfDayUTCTime(timezone string) error {
	if t == nil {
		return nil
	}

	localTime := time.Time(*t)

	if timezone == "" {
		timezone = "Australia/Brisbane"
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}

	localTimeInZone := time.Date(
		localTime.Year(), localTime.Month(), localTime.Day(),
		23, 59, 59, 999,
		location,
	)
	*t = DateString(localTimeInZone.In(time.UTC))
	return nil
}

var _ json.Marshaler = DateString{}
var _ json.Unmarshaler = (*DateString)(nil)

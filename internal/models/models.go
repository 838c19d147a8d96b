package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const NotSpecified = "Not specified"

// Field describes one form field of a tournament entry and how it is
// carried through the checkout session metadata.
type Field struct {
	Form    string // key used by the entry form and the recording endpoint
	Meta    string // key inside the payment provider's session metadata
	Default string // what the submitter sends when the form leaves it out
	Alias   string // alternative inbound form key
}

// Fields lists every recognised entry field in spreadsheet column order.
var Fields = []Field{
	{Form: "name", Meta: "name", Default: NotSpecified},
	{Form: "email", Meta: "email", Default: NotSpecified},
	{Form: "phone", Meta: "phone", Default: NotSpecified},
	{Form: "gender", Meta: "gender", Default: NotSpecified},
	{Form: "tte number", Meta: "tte", Default: NotSpecified, Alias: "tte"},
	{Form: "club", Meta: "club", Default: NotSpecified},
	{Form: "county", Meta: "county", Default: NotSpecified},
	{Form: "dob", Meta: "dob", Default: NotSpecified},
	{Form: "disability", Meta: "disability"},
	{Form: "not tte aff", Meta: "nationalAssociation"},
	{Form: "player-name-print", Meta: "playerNamePrint"},
	{Form: "undertaking-date", Meta: "undertakingDate"},
	{Form: "data-protection-name", Meta: "dataProtectionName"},
	{Form: "data-protection-date", Meta: "dataProtectionDate"},
	{Form: "guardian-name", Meta: "guardianName"},
	{Form: "guardian-relation", Meta: "guardianRelation"},
	{Form: "guardian-date", Meta: "guardianDate"},
	{Form: "anti-doping-name", Meta: "antiDopingName"},
	{Form: "anti-doping-relation", Meta: "antiDopingRelation"},
	{Form: "anti-doping-date", Meta: "antiDopingDate"},
}

// Entry is a tournament entry keyed by form field name.
type Entry map[string]string

// EntryFromJSON converts a decoded JSON object into an Entry. Values that a
// browser form would treat as blank (null, "", false, 0) are dropped.
func EntryFromJSON(raw map[string]any) Entry {
	e := Entry{}
	for k, v := range raw {
		if !Present(v) {
			continue
		}
		e[k] = stringify(v)
	}
	return e
}

// Present reports whether v carries a value, using form semantics:
// missing, null, empty string, false and zero are all absent.
func Present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// Get returns the value for f, falling back to its alias key.
func (e Entry) Get(f Field) string {
	if v := e[f.Form]; v != "" {
		return v
	}
	if f.Alias != "" {
		return e[f.Alias]
	}
	return ""
}

// Name is the submitter's name or "" when absent.
func (e Entry) Name() string {
	return strings.TrimSpace(e["name"])
}

// WithDefaults returns a copy holding every recognised field, substituting
// the field default where the entry has no value.
func (e Entry) WithDefaults() Entry {
	out := make(Entry, len(Fields))
	for _, f := range Fields {
		v := e.Get(f)
		if v == "" {
			v = f.Default
		}
		out[f.Form] = v
	}
	return out
}

// Metadata re-keys the entry into the provider metadata schema.
// All twenty keys are always present.
func (e Entry) Metadata() map[string]string {
	md := make(map[string]string, len(Fields))
	for _, f := range Fields {
		md[f.Meta] = e.Get(f)
	}
	return md
}

// EntryFromMetadata maps provider metadata back to form field names.
func EntryFromMetadata(md map[string]string) Entry {
	e := make(Entry, len(Fields))
	for _, f := range Fields {
		e[f.Form] = md[f.Meta]
	}
	return e
}

// CheckoutSessionRequest is the body the submitter posts to the session creator.
type CheckoutSessionRequest struct {
	Entry      Entry
	TotalPrice string
}

func (r CheckoutSessionRequest) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(r.Entry)+1)
	for k, v := range r.Entry {
		m[k] = v
	}
	m["totalPrice"] = r.TotalPrice
	return json.Marshal(m)
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
}

const StatusPaid = "Paid"

// PaymentConfirmation is derived from a completed checkout session.
type PaymentConfirmation struct {
	Status    string
	PaidAt    string
	SessionID string
	Amount    string // major units, two decimals
}

// ForwardedRecord is what the recording endpoint receives for a paid entry.
type ForwardedRecord struct {
	Entry   Entry
	Payment PaymentConfirmation
	APIKey  string
}

// Fields flattens the record to the recording endpoint's key names.
func (r ForwardedRecord) Fields() map[string]string {
	m := make(map[string]string, len(Fields)+5)
	for _, f := range Fields {
		m[f.Form] = r.Entry.Get(f)
	}
	m["paymentStatus"] = r.Payment.Status
	m["paymentDate"] = r.Payment.PaidAt
	m["sessionId"] = r.Payment.SessionID
	m["amount"] = r.Payment.Amount
	m["apiKey"] = r.APIKey
	return m
}

func (r ForwardedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// RowHeader names the columns produced by Row.
func RowHeader() []string {
	h := make([]string, 0, len(Fields)+4)
	for _, f := range Fields {
		h = append(h, f.Form)
	}
	return append(h, "paymentStatus", "paymentDate", "sessionId", "amount")
}

// Row is the record as a spreadsheet row. The API key is not included.
func (r ForwardedRecord) Row() []interface{} {
	row := make([]interface{}, 0, len(Fields)+4)
	for _, f := range Fields {
		row = append(row, r.Entry.Get(f))
	}
	return append(row, r.Payment.Status, r.Payment.PaidAt, r.Payment.SessionID, r.Payment.Amount)
}

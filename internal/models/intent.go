// internal/models/intent.go
package models

// CommandKind names a command the interpreter recognizes. The string value is the command
// name without its prefix.
type CommandKind string

const (
	KindBalance      CommandKind = "balance"
	KindEmailLookup  CommandKind = "email_lookup"
	KindSSNLookup    CommandKind = "ssn_lookup"
	KindPhoneLookup  CommandKind = "phone_lookup"
	KindIPLookup     CommandKind = "ip_lookup"
	KindDomainLookup CommandKind = "domain_lookup"
	KindBINLookup    CommandKind = "bin_lookup"
	KindSetLicense   CommandKind = "set_license"
	KindUsageError   CommandKind = "usage_error"
	KindUnknown      CommandKind = "unknown"
)

// Intent is the parsed form of a command. The set of implementations is closed: only types in
// this package satisfy it.
type Intent interface {
	Kind() CommandKind
	intent()
}

type BalanceIntent struct{}

type EmailLookupIntent struct {
	Email string `json:"email" validate:"required,email"`
}

type SSNLookupIntent struct {
	FirstName string `json:"firstName" validate:"required,max=64"`
	LastName  string `json:"lastName" validate:"required,max=64"`
	DOB       string `json:"dob" validate:"required,max=32"`
}

type PhoneLookupIntent struct {
	Phone string `json:"phone" validate:"required,max=32,phone"`
}

type IPLookupIntent struct {
	IP string `json:"ip" validate:"required,ip"`
}

type DomainLookupIntent struct {
	Domain string `json:"domain" validate:"required,max=253"`
}

type BINLookupIntent struct {
	BIN string `json:"bin" validate:"required,numeric,min=6,max=8"`
}

type SetLicenseIntent struct {
	Key string `json:"key"`
}

// UsageErrorIntent is produced for a known command given the wrong number of arguments.
type UsageErrorIntent struct {
	Command CommandKind `json:"command"`
	Usage   string      `json:"usage"`
}

type UnknownIntent struct {
	Raw string `json:"raw"`
}

func (BalanceIntent) Kind() CommandKind      { return KindBalance }
func (EmailLookupIntent) Kind() CommandKind  { return KindEmailLookup }
func (SSNLookupIntent) Kind() CommandKind    { return KindSSNLookup }
func (PhoneLookupIntent) Kind() CommandKind  { return KindPhoneLookup }
func (IPLookupIntent) Kind() CommandKind     { return KindIPLookup }
func (DomainLookupIntent) Kind() CommandKind { return KindDomainLookup }
func (BINLookupIntent) Kind() CommandKind    { return KindBINLookup }
func (SetLicenseIntent) Kind() CommandKind   { return KindSetLicense }
func (UsageErrorIntent) Kind() CommandKind   { return KindUsageError }
func (UnknownIntent) Kind() CommandKind      { return KindUnknown }

func (BalanceIntent) intent()      {}
func (EmailLookupIntent) intent()  {}
func (SSNLookupIntent) intent()    {}
func (PhoneLookupIntent) intent()  {}
func (IPLookupIntent) intent()     {}
func (DomainLookupIntent) intent() {}
func (BINLookupIntent) intent()    {}
func (SetLicenseIntent) intent()   {}
func (UsageErrorIntent) intent()   {}
func (UnknownIntent) intent()      {}

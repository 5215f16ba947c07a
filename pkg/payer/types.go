package payer

// BeneficiaryType is individual or business.
type BeneficiaryType string

// Beneficiary types.
const (
	BeneficiaryIndividual BeneficiaryType = "individual"
	BeneficiaryBusiness   BeneficiaryType = "business"
)

// ComplianceRequest starts compliance for a payer.
type ComplianceRequest struct {
	ClientUserID    string          `json:"clientUserId"`
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	BeneficiaryType BeneficiaryType `json:"beneficiaryType"`
	CompanyName     string          `json:"companyName,omitempty"`
	DateOfBirth     string          `json:"dateOfBirth,omitempty"`
	AddressLine1    string          `json:"addressLine1,omitempty"`
	AddressLine2    string          `json:"addressLine2,omitempty"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	Postcode        string          `json:"postcode,omitempty"`
	Country         string          `json:"country,omitempty"`
	Nationality     string          `json:"nationality,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	SSN             string          `json:"ssn,omitempty"`
}

// ComplianceResponse carries the links the payer follows to complete
// compliance.
type ComplianceResponse struct {
	AgreementURL string `json:"agreementUrl,omitempty"`
	KYCURL       string `json:"kycUrl,omitempty"`
	Status       struct {
		AgreementStatus string `json:"agreementStatus,omitempty"`
		KYCStatus       string `json:"kycStatus,omitempty"`
	} `json:"status"`
	UserID string `json:"userId,omitempty"`
}

// ComplianceStatus is the current compliance state of a payer.
type ComplianceStatus struct {
	KYCStatus       string `json:"kycStatus,omitempty"`
	AgreementStatus string `json:"agreementStatus,omitempty"`
	IsCompliant     bool   `json:"isCompliant"`
	UserID          string `json:"userId,omitempty"`
}

// PaymentDetailsRequest registers a bank account for a payer.
type PaymentDetailsRequest struct {
	BankName        string          `json:"bankName"`
	AccountName     string          `json:"accountName"`
	AccountNumber   string          `json:"accountNumber,omitempty"`
	RoutingNumber   string          `json:"routingNumber,omitempty"`
	IBAN            string          `json:"iban,omitempty"`
	SwiftBIC        string          `json:"swiftBic,omitempty"`
	BeneficiaryType BeneficiaryType `json:"beneficiaryType"`
	Currency        string          `json:"currency"`
	AddressLine1    string          `json:"addressLine1,omitempty"`
	City            string          `json:"city,omitempty"`
	PostalCode      string          `json:"postalCode,omitempty"`
	Country         string          `json:"country,omitempty"`
}

// PaymentDetail is a registered bank account.
type PaymentDetail struct {
	ID          string `json:"id"`
	BankName    string `json:"bankName,omitempty"`
	AccountName string `json:"accountName,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Status      string `json:"status,omitempty"`
}

type paymentDetailsCreated struct {
	PaymentDetail PaymentDetail `json:"payment_detail"`
}

type paymentDetailsList struct {
	PaymentDetails []PaymentDetail `json:"paymentDetails"`
}

type complianceUpdate struct {
	AgreementCompleted bool `json:"agreementCompleted"`
}

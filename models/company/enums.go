package company

// IdentificationType classifies the legal identification a company registers with.
type IdentificationType string

const (
	IDTypeTax       IdentificationType = "tax_id"
	IDTypeCitizen   IdentificationType = "citizen_id"
	IDTypeForeigner IdentificationType = "foreigner_id"
	IDTypePassport  IdentificationType = "passport"
)

func (it IdentificationType) String() string {
	return string(it)
}

func (it IdentificationType) IsValid() bool {
	switch it {
	case IDTypeTax, IDTypeCitizen, IDTypeForeigner, IDTypePassport:
		return true
	default:
		return false
	}
}

// GetAllIdentificationTypes returns all valid identification types
func GetAllIdentificationTypes() []IdentificationType {
	return []IdentificationType{
		IDTypeTax,
		IDTypeCitizen,
		IDTypeForeigner,
		IDTypePassport,
	}
}

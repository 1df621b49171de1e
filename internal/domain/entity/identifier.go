package entity

// AccountCodeIdentifier is excluded from pivoted identifier output; its value
// already travels on every report row as the account code.
const AccountCodeIdentifier = "ACCOUNT_CODE"

// IdentifierName is one entry of the identifier-name dictionary.
type IdentifierName struct {
	IdentNumber int    `json:"ident_number"`
	IdentName   string `json:"ident_name"`
}

// IdentifierAssignment attaches one identifier value to a detail line via the
// IdentNumber foreign key into the dictionary.
type IdentifierAssignment struct {
	DetailUID   int64  `json:"detail_uid"`
	DetailLine  int    `json:"detail_line"`
	IdentNumber int    `json:"ident_number"`
	IdentValue  string `json:"ident_value"`
}

// IdentifierPair is a resolved (name, value) business tag on a detail line.
type IdentifierPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

package registration

// Field names double as the multipart part names and the draft JSON keys.
type Field string

const (
	FieldFullName      Field = "fullName"
	FieldCollege       Field = "college"
	FieldDepartment    Field = "department"
	FieldEmail         Field = "email"
	FieldPhone         Field = "phone"
	FieldEvents        Field = "events"
	FieldPaperTopic    Field = "paperTopic"
	FieldMember2       Field = "member2"
	FieldMember3       Field = "member3"
	FieldMember4       Field = "member4"
	FieldTransactionID Field = "transactionId"
	FieldReceipt       Field = "receipt"
	FieldNotes         Field = "notes"
	FieldTerms         Field = "terms"
)

var RequiredFields = []Field{
	FieldFullName,
	FieldCollege,
	FieldDepartment,
	FieldEmail,
	FieldPhone,
	FieldTransactionID,
}

var TextFields = []Field{
	FieldFullName,
	FieldCollege,
	FieldDepartment,
	FieldEmail,
	FieldPhone,
	FieldPaperTopic,
	FieldMember2,
	FieldMember3,
	FieldMember4,
	FieldTransactionID,
	FieldNotes,
}

func memberIndex(f Field) (int, bool) {
	switch f {
	case FieldMember2:
		return 0, true
	case FieldMember3:
		return 1, true
	case FieldMember4:
		return 2, true
	default:
		return 0, false
	}
}

// Text returns the current value of a text field.
func (r Registration) Text(f Field) (string, error) {
	if i, ok := memberIndex(f); ok {
		return r.TeamMembers[i], nil
	}
	switch f {
	case FieldFullName:
		return r.FullName, nil
	case FieldCollege:
		return r.College, nil
	case FieldDepartment:
		return r.Department, nil
	case FieldEmail:
		return r.Email, nil
	case FieldPhone:
		return r.Phone, nil
	case FieldPaperTopic:
		return r.PaperTopic, nil
	case FieldTransactionID:
		return r.TransactionID, nil
	case FieldNotes:
		return r.Notes, nil
	default:
		return "", NewUnknownFieldError(f)
	}
}

// SetText writes a text field in place.
func (r *Registration) SetText(f Field, value string) error {
	if i, ok := memberIndex(f); ok {
		r.TeamMembers[i] = value
		return nil
	}
	switch f {
	case FieldFullName:
		r.FullName = value
	case FieldCollege:
		r.College = value
	case FieldDepartment:
		r.Department = value
	case FieldEmail:
		r.Email = value
	case FieldPhone:
		r.Phone = value
	case FieldPaperTopic:
		r.PaperTopic = value
	case FieldTransactionID:
		r.TransactionID = value
	case FieldNotes:
		r.Notes = value
	default:
		return NewUnknownFieldError(f)
	}
	return nil
}

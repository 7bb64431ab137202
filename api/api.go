package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiSpec []byte

const RegisterPath = "/register"

// DocsPath is where the stub serves the contract and a Swagger UI for it.
const DocsPath = "/docs"

// Multipart part names of a registration request, in the order they are
// written.
const (
	PartFullName      = "fullName"
	PartCollege       = "college"
	PartDepartment    = "department"
	PartEmail         = "email"
	PartPhone         = "phone"
	PartEvents        = "events"
	PartPaperTopic    = "paperTopic"
	PartMember2       = "member2"
	PartMember3       = "member3"
	PartMember4       = "member4"
	PartTransactionID = "transactionId"
	PartReceipt       = "receipt"
	PartNotes         = "notes"
	PartTerms         = "terms"
)

// TermsAccepted is the value the terms checkbox submits when checked.
const TermsAccepted = "on"

const RequestIDHeader = "X-Request-Id"

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

func (e Environment) String() string {
	switch e {
	case PROD:
		return "PROD"
	default:
		return "LOCAL"
	}
}

// RegisterResponse is the JSON body returned by POST /register.
type RegisterResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
}

type ErrorCode string

const (
	InputValidationError ErrorCode = "InputValidationError"
	InternalError        ErrorCode = "InternalError"
)

type Error struct {
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
}

// GetSwagger returns the parsed contract for the registration endpoint.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi spec: %w", err)
	}

	if err := swagger.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("openapi spec is invalid: %w", err)
	}

	return swagger, nil
}

package http

import (
	"github.com/go-po-api/internal/application/otp"
	"github.com/go-po-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-po-api/internal/infrastructure/jwt"
	s3infra "github.com/go-po-api/internal/infrastructure/s3"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OrderRepo       *dynamo.OrderRepo
	CredentialStore otp.CredentialStore
	Gateway         otp.Gateway
	DocumentStore   *s3infra.Store
	JWTProvider     *jwtinfra.Provider
}

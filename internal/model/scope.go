package model

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity of the user a request acts on behalf of.
// It is built by the delivery layer and passed to every usecase call.
type Scope struct {
	UserID    string
	Username  string
	AuthToken string
}

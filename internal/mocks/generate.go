// Package mocks provides mock implementations for testing the console services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the upstream API port. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	api := mocks.NewMockAPI(ctrl)
//	api.EXPECT().Me(gomock.Any(), "token").Return(user, nil)
package mocks

// Generate mock for the API interface from internal/ports.
// This creates MockAPI with methods for all API interface methods:
// RequestCode, VerifyCode, Me, UpdateMe, ListTenants, CreateTenant,
// Membership, ListMembers, UpdateMember, ListInvitations, CreateInvitation,
// AcceptInvitation, RevokeInvitation, ResendInvitation
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=api_mock.go github.com/postika/console/internal/ports API

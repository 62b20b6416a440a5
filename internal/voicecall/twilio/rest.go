//go:generate go run go.uber.org/mock/mockgen@latest -source=rest.go -destination=mocks_test.go -package=twilio
package twilio

import (
	twiliogo "github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type callCreator interface {
	CreateCall(params *api.CreateCallParams) (*api.ApiV2010Call, error)
}

type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

func newRestService(accountSID, authToken string) *api.ApiService {
	client := twiliogo.NewRestClientWithParams(twiliogo.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return client.Api
}

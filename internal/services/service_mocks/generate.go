package service_mocks

//go:generate mockgen -source=../interfaces.go -destination=service_mocks.go -package=service_mocks
//go:generate mockgen -source=../../events/events.go -destination=publisher_mock.go -package=service_mocks

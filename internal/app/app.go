package app

import (
	"fulfillment/internal/handlers/rest/delivery_arrive_post"
	"fulfillment/internal/handlers/rest/delivery_assign_post"
	"fulfillment/internal/handlers/rest/delivery_command_post"
	"fulfillment/internal/handlers/rest/delivery_confirm_post"
	"fulfillment/internal/handlers/rest/delivery_get"
	"fulfillment/internal/handlers/rest/delivery_incident_post"
	"fulfillment/internal/handlers/rest/delivery_location_put"
	"fulfillment/internal/handlers/rest/delivery_post"
	"fulfillment/internal/handlers/rest/history_get"
	"fulfillment/internal/handlers/rest/reservation_consume_post"
	"fulfillment/internal/handlers/rest/reservation_get"
	"fulfillment/internal/handlers/rest/reservation_post"
	"fulfillment/internal/handlers/rest/reservation_release_post"
	"fulfillment/internal/handlers/rest/sale_get"
	"fulfillment/internal/handlers/rest/sale_logistics_status_post"
	"fulfillment/internal/handlers/rest/sale_post"
	"fulfillment/internal/handlers/rest/stock_get"
	"fulfillment/internal/handlers/rest/stock_put"
	"fulfillment/internal/service/driveraction"
	fanoutService "fulfillment/internal/service/fanout"
	"fulfillment/pkg/background"
)

type Application struct {
	ServiceSale        ServiceSale
	ServiceReservation ServiceReservation
	ServiceDelivery    ServiceDelivery
	ServiceHistory     ServiceHistory
	Dispatcher         *fanoutService.Dispatcher
	BackgroundWorkers  *background.Worker
}

type ServiceSale interface {
	sale_post.Service
	sale_get.Service
	sale_logistics_status_post.Service
}

type ServiceReservation interface {
	reservation_post.Service
	reservation_get.Service
	reservation_consume_post.Service
	reservation_release_post.Service
	stock_put.Service
	stock_get.Service
}

type ServiceDelivery interface {
	delivery_post.Service
	delivery_get.Service
	delivery_command_post.Service
	delivery_assign_post.Service
	delivery_arrive_post.Service
	delivery_confirm_post.Service
	delivery_incident_post.Service
	delivery_location_put.Service
}

type ServiceHistory interface {
	history_get.Service
}

// DriverActionApp зависимости воркера действий водителя.
type DriverActionApp struct {
	DriverActionService *driveraction.Service
	Dispatcher          *fanoutService.Dispatcher
}

package cmd

import (
	"relist/internal/adapters/out/postgres"
	"relist/internal/core/application/usecases/commands"
	"relist/internal/core/application/usecases/queries"
	"relist/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	lifecycle  *services.Lifecycle
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		lifecycle:  services.NewLifecycle(),
	}
}

func (c *CompositionRoot) CreateCreateListingCommandHandler() commands.CreateListingCommandHandler {
	var f commands.ListingUoWFactory = FuncListingUoWFactory(func() commands.ListingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateListingCommandHandler(f)
}

func (c *CompositionRoot) CreateCreatePickupRequestCommandHandler() commands.CreatePickupRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePickupRequestCommandHandler(f, c.lifecycle)
}

func (c *CompositionRoot) CreateUpdatePickupRequestCommandHandler() commands.UpdatePickupRequestCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePickupRequestCommandHandler(f, c.lifecycle)
}

func (c *CompositionRoot) CreateReviewListingCommandHandler() commands.ReviewListingCommandHandler {
	var f commands.ListingUoWFactory = FuncListingUoWFactory(func() commands.ListingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewListingCommandHandler(f, c.lifecycle)
}

func (c *CompositionRoot) CreateCancelStalePickupsCommandHandler() commands.CancelStalePickupsCommandHandler {
	var f commands.PickupUoWFactory = FuncPickupUoWFactory(func() commands.PickupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStalePickupsCommandHandler(f, c.lifecycle)
}

func (c *CompositionRoot) CreateGetListingsByStatusQueryHandler() queries.GetListingsByStatusQueryHandler {
	return queries.NewGetListingsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPickupRequestsByAgentQueryHandler() queries.GetPickupRequestsByAgentQueryHandler {
	return queries.NewGetPickupRequestsByAgentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPickupRequestsByListingQueryHandler() queries.GetPickupRequestsByListingQueryHandler {
	return queries.NewGetPickupRequestsByListingQueryHandler(c.gormDB)
}

type FuncListingUoWFactory func() commands.ListingUoW

func (f FuncListingUoWFactory) Create() commands.ListingUoW {
	return f()
}

type FuncPickupUoWFactory func() commands.PickupUoW

func (f FuncPickupUoWFactory) Create() commands.PickupUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

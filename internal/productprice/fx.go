package productprice

import (
	"github.com/smallbiznis/quotehub/internal/productprice/repository"
	"github.com/smallbiznis/quotehub/internal/productprice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("productprice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

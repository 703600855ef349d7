package region

import (
	"github.com/smallbiznis/quotehub/internal/region/repository"
	"github.com/smallbiznis/quotehub/internal/region/service"
	"go.uber.org/fx"
)

var Module = fx.Module("region.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

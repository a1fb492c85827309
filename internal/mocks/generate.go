package mocks

//go:generate mockery --name EventStore --srcpkg github.com/aevon-lab/caliper-gateway/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name WebhookStore --srcpkg github.com/aevon-lab/caliper-gateway/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name SensorLookup --srcpkg github.com/aevon-lab/caliper-gateway/internal/auth --output ./auth --outpkg authmocks --with-expecter
//go:generate mockery --name Publisher --srcpkg github.com/aevon-lab/caliper-gateway/internal/archive --output ./archive --outpkg archivemocks --with-expecter

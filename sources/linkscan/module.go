package linkscan

import "go.uber.org/fx"

var Module = fx.Module("linkscan", fx.Provide(NewScanner))

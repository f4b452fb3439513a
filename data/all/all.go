// Package all registers every driver the service can be configured with:
//
//	import _ "github.com/ncobase/posts/data/all"
package all

import (
	// Database drivers
	_ "github.com/ncobase/posts/data/mongodb"
	_ "github.com/ncobase/posts/data/mysql"
	_ "github.com/ncobase/posts/data/postgres"
	_ "github.com/ncobase/posts/data/sqlite"

	// Cache drivers
	_ "github.com/ncobase/posts/data/redis"
)

// Package storefront wires the client side of the NeuroGrid course storefront:
// token persistence, the session manager, gated actions, email capture and
// checkout, all talking to the storefront REST API.
//
// # Packages
//
//	github.com/neurogrid/storefront/core/apiclient     - REST client for the storefront API
//	github.com/neurogrid/storefront/core/tokenstore    - Durable single-token storage (memory, file)
//	github.com/neurogrid/storefront/core/session       - Session manager with stale-resolution guard
//	github.com/neurogrid/storefront/core/gate          - Pure decisions for gated actions
//	github.com/neurogrid/storefront/core/checkout      - Package catalog and checkout initiation
//	github.com/neurogrid/storefront/core/emailcapture  - Newsletter capture prompt
//	github.com/neurogrid/storefront/core/config        - Cached environment configuration loading
//	github.com/neurogrid/storefront/core/logger        - slog factory and attribute helpers
//	github.com/neurogrid/storefront/core/validator     - Tag-based struct validation
//	github.com/neurogrid/storefront/integration/database/redis   - Redis connection with retry
//	github.com/neurogrid/storefront/integration/tokenstore/redis - Redis-backed token store
//	github.com/neurogrid/storefront/pkg/async          - Typed futures
//
// # Usage
//
//	cfg, err := storefront.LoadConfig()
//	if err != nil {
//		return err
//	}
//	app, err := storefront.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	app.Session.Bootstrap(ctx)
//	out, err := app.Dispatch(ctx, gate.Intent{Action: gate.PurchasePackage, PackageID: "starter"})
//	if err != nil {
//		fmt.Println(storefront.Message(err))
//	}
//
// Dispatch evaluates the gate against the current session and carries out
// Proceed decisions that need the backend, such as opening a checkout.
package storefront

/*
Package app wires the swap extensions into an abci application: the
transaction format, the decorator chain, the message router, the query
router and the genesis initializers.
*/
package app

import (
	"context"
	"path/filepath"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/commands/server"
	"github.com/iov-one/swap/orm"
	"github.com/iov-one/swap/store/iavl"
	"github.com/iov-one/swap/x"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
	"github.com/iov-one/swap/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Name is reported by abci Info and used as the metrics namespace.
const Name = "swapd"

// Authenticator returns the default authentication, the signatures of the
// transaction.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and atomic execution. A nil metrics decorator is
// skipped.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// on deliver, roll back all changes of a failed transaction
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a default router, only dispatching to the offer
// messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	offer.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/offers", "/tokens", "/reserves", "/auth" and "/"
func QueryRouter() swap.QueryRouter {
	r := swap.NewQueryRouter()
	r.RegisterAll(
		offer.RegisterQuery,
		token.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() swap.Initializer {
	return app.ChainInitializers(
		token.Initializer{},
		offer.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(metrics *utils.Metrics) swap.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. An empty dbPath keeps the state in memory.
func Application(name string, h swap.Handler, tx swap.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv := iavl.NewCommitStore(dbPath, name)
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	store = store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "data")
	}

	var metrics *utils.Metrics
	if options.Registerer != nil {
		m, err := utils.NewMetrics(Name, options.Registerer)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	application, err := Application(Name, Stack(metrics), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	if options.Logger != nil {
		application.WithLogger(options.Logger)
	}
	return application, nil
}

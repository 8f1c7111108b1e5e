package handlers

import (
	portssvc "github.com/finvera/ledger-service/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// Services bundles the service facades the HTTP layer depends on.
type Services struct {
	Account   portssvc.AccountSvcFacade
	Posting   portssvc.PostingSvcFacade
	Balance   portssvc.BalanceSvcFacade
	Statement portssvc.StatementSvcFacade
}

// RegisterRoutes attaches all ledger routes to the given (already
// tenant-scoped) router group.
func RegisterRoutes(rg *gin.RouterGroup, svcs Services) {
	accountH := newAccountHandler(svcs.Account)
	ledgerH := newLedgerHandler(svcs.Posting)
	balanceH := newBalanceHandler(svcs.Balance)
	statementH := newStatementHandler(svcs.Statement)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", accountH.createAccount)
		accounts.GET("", accountH.listAccounts)
		accounts.GET("/:accountID", accountH.getAccount)
		accounts.GET("/:accountID/balance", balanceH.getBalance)
		accounts.GET("/:accountID/statement", statementH.getStatement)
	}

	rg.POST("/balances/query", balanceH.queryBalances)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", ledgerH.postTransaction)
		transactions.GET("", ledgerH.listTransactions)
		transactions.GET("/:journalID", ledgerH.getTransaction)
	}
}

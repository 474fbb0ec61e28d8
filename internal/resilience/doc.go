// Package resilience holds the fault tolerance around the database.
//
// The circuitbreaker subpackage wraps the *sql.DB pool so that a failing
// database is answered quickly instead of piling up waiting requests.
// Statement errors such as constraint violations never trip the breaker.
//
//	breaker := circuitbreaker.NewDBCircuitBreaker(db)
//	repo := postgres.NewArticleRepo(breaker)
package resilience

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"farmprice/internal/config"
	"farmprice/internal/database"
	"farmprice/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	// Create connection pool the same way the server does
	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop(), database.WithMigration(repository.Migrate))
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"liked_products", "sessions"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// FakeUpstream serves canned price API responses. Setting Down makes every
// endpoint answer 503.
type FakeUpstream struct {
	Server *httptest.Server
	Down   atomic.Bool
}

// URL returns the base URL of the fake price API.
func (f *FakeUpstream) URL() string {
	return f.Server.URL
}

const productPricesJSON = `{"productPrices":[
	{"product":{"_id":"tomato","name":"Tomato","imageURL":"https://img/tomato.png","baseUnit":"kg","priority":1,"isInDemand":true},
	 "marketPrices":[
		{"_id":"m1","marketName":"Mysuru","price":10,"previousPrice":8,"updatedAt":"2024-03-01T06:00:00Z"},
		{"_id":"m2","marketName":"Mandya","price":20,"previousPrice":20,"updatedAt":"2024-03-01T06:00:00Z"},
		{"_id":"m3","marketName":"Hassan","price":30,"previousPrice":0,"updatedAt":"2024-03-01T06:00:00Z"}]},
	{"product":{"_id":"potato","name":"Potato","imageURL":"https://img/potato.png","baseUnit":"kg","priority":2},
	 "marketPrices":[
		{"_id":"m1","marketName":"Mysuru","price":25,"previousPrice":20,"updatedAt":"2024-03-01T06:00:00Z"}]},
	{"product":{"_id":"onion","name":"Onion","imageURL":"https://img/onion.png","baseUnit":"kg","priority":3},
	 "marketPrices":[]}
]}`

const tomatoMarketsJSON = `{"product":{"_id":"tomato","name":"Tomato","baseUnit":"kg"},"prices":[
	{"market":{"_id":"m1","place":"Mysuru"},"price":10,"previousPrice":8,"updatedAt":"2024-03-01T06:00:00Z"},
	{"market":{"_id":"m2","place":"Mandya"},"price":20,"previousPrice":20,"updatedAt":"2024-03-01T06:00:00Z"},
	{"market":{"_id":"m3","place":"Hassan"},"price":30,"previousPrice":0,"updatedAt":"2024-03-01T06:00:00Z"}
]}`

const potatoMarketsJSON = `{"product":{"_id":"potato","name":"Potato","baseUnit":"kg"},"prices":[
	{"market":{"_id":"m1","place":"Mysuru"},"price":25,"previousPrice":20,"updatedAt":"2024-03-01T06:00:00Z"}
]}`

const tomatoHistoryJSON = `{"product":{"_id":"tomato","name":"Tomato","baseUnit":"kg"},"prices":[
	{"price":108,"date":"2024-03-01T00:00:00Z"},
	{"price":112,"previousPrice":110,"date":"2024-03-03T00:00:00Z"},
	{"price":110,"previousPrice":108,"date":"2024-03-02T00:00:00Z"}
]}`

const marketProductsJSON = `{"marketProducts":[
	{"marketId":"m1","market":{"_id":"m1","place":"Mysuru"},"products":[
		{"product":{"_id":"tomato","name":"Tomato"},"currentPrice":10,"date":"2024-03-01T06:00:00Z"}]},
	{"marketId":"m2","market":{"place":"Mandya"},"products":[]}
]}`

// NewFakeUpstream starts a fake price API for the duration of the test.
func NewFakeUpstream(t *testing.T) *FakeUpstream {
	t.Helper()

	f := &FakeUpstream{}
	mux := http.NewServeMux()

	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}
	}

	mux.HandleFunc("GET /markets/productPriceInAllMarkets", reply(productPricesJSON))
	mux.HandleFunc("GET /markets/productPriceInAllMarkets/tomato", reply(tomatoMarketsJSON))
	mux.HandleFunc("GET /markets/productPriceInAllMarkets/potato", reply(potatoMarketsJSON))
	mux.HandleFunc("GET /markets/productPriceInAllMarkets/ghost", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Product not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("GET /markets/priceHistory/m1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("productId") != "tomato" {
			http.Error(w, `{"message":"No history"}`, http.StatusNotFound)
			return
		}
		reply(tomatoHistoryJSON)(w, r)
	})
	mux.HandleFunc("GET /markets/allMarketProducts", reply(marketProductsJSON))
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid password"}`))
			return
		}
		reply(`{"token":"tok-123","name":"Ravi","email":"ravi@example.com","phone":"9999999999"}`)(w, r)
	})
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"User registered"}`))
	})

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.Down.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/guildbot/premium-backend/api"
	"github.com/guildbot/premium-backend/bot"
	"github.com/guildbot/premium-backend/db"
	"github.com/guildbot/premium-backend/log"
	"github.com/guildbot/premium-backend/premium"
	"github.com/guildbot/premium-backend/toss"
)

func main() {
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.StringP("secret", "s", "", "API JWT secret, shared with the bot")
	flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.String("mongo-url", "", "the URL of the MongoDB server")
	flag.String("mongo-db", "premium-backend", "the name of the MongoDB database")
	flag.String("redis-url", "redis://localhost:6379/0", "the URL of the Redis server holding the bot cache mirror")
	flag.String("toss-api", toss.DefaultAPIURL, "Toss Payments API URL")
	flag.String("toss-secret-key", "", "Toss Payments secret key")
	flag.String("toss-brandpay-secret-key", "", "Toss BrandPay secret key")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("GUILDBOT")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	log.Init(viper.GetString("log-level"), "stdout")
	host := viper.GetString("host")
	port := viper.GetInt("port")
	secret := viper.GetString("secret")
	if secret == "" {
		log.Fatal("secret is required")
	}
	tossSecretKey := viper.GetString("toss-secret-key")
	tossBrandPaySecretKey := viper.GetString("toss-brandpay-secret-key")
	if tossSecretKey == "" || tossBrandPaySecretKey == "" {
		log.Fatal("toss secret keys are required")
	}
	// load the default catalog items embedded in the binary
	items, err := db.ReadItemJSON()
	if err != nil {
		log.Fatalf("could not read the default catalog items: %v", err)
	}
	// initialize the MongoDB database
	database, err := db.New(viper.GetString("mongo-url"), viper.GetString("mongo-db"), items)
	if err != nil {
		log.Fatalf("could not create the MongoDB database: %v", err)
	}
	defer database.Close()
	// connect to the bot cache mirror
	redisCache, err := bot.NewRedisCache(viper.GetString("redis-url"))
	if err != nil {
		log.Fatalf("could not connect to the bot cache: %v", err)
	}
	defer func() {
		if err := redisCache.Close(); err != nil {
			log.Warnw("failed to close the bot cache connection", "error", err)
		}
	}()
	cache := bot.NewCachedLookup(redisCache)
	// create the payment gateway client
	tossClient := toss.NewClient(&toss.Config{
		APIURL:            viper.GetString("toss-api"),
		SecretKey:         tossSecretKey,
		BrandPaySecretKey: tossBrandPaySecretKey,
	})
	// create the entitlement service
	premiumService := premium.New(database, cache)
	// create the local API server
	api.New(&api.Config{
		Host:    host,
		Port:    port,
		Secret:  secret,
		DB:      database,
		Toss:    tossClient,
		Premium: premiumService,
		Cache:   cache,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}

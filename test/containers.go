// Package test provides testing utilities for the premium backend,
// including throwaway MongoDB and Redis containers.
package test

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// MongoPort is the port exposed by the MongoDB test container.
	MongoPort = "27017"
	// RedisPort is the port exposed by the Redis test container.
	RedisPort = "6379"
)

// StartMongoContainer starts a MongoDB container for testing the storage
// layer. It returns the container and any error encountered during startup.
func StartMongoContainer(ctx context.Context) (testcontainers.Container, error) {
	mongoPort := fmt.Sprintf("%s/tcp", MongoPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "mongo:7",
				ExposedPorts: []string{mongoPort},
				WaitingFor:   wait.ForListeningPort(MongoPort),
			},
			Started: true,
		})
}

// StartRedisContainer starts a Redis container standing in for the bot
// cache mirror.
func StartRedisContainer(ctx context.Context) (testcontainers.Container, error) {
	redisPort := fmt.Sprintf("%s/tcp", RedisPort)
	return testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7",
				ExposedPorts: []string{redisPort},
				WaitingFor:   wait.ForListeningPort(RedisPort),
			},
			Started: true,
		})
}

// RandomDatabaseName returns a random database name, so that concurrent
// test packages sharing a MongoDB server do not step on each other.
func RandomDatabaseName() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("test_%x", b)
}

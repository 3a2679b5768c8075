/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"context"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/docdb/pkg/server"
	"github.com/unikorn-cloud/docdb/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var (
	client *api.APIClient
	ctx    context.Context
	config *api.TestConfig
)

var _ = BeforeSuite(func() {
	config = api.LoadTestConfig()

	if config.DebugLogging {
		log.SetLogger(crzap.New(crzap.WriteTo(GinkgoWriter), crzap.UseDevMode(true)))
	}

	if config.BaseURL == "" {
		emulator := &server.Server{}

		handler, err := emulator.Handler(log.IntoContext(context.Background(), log.Log))
		Expect(err).NotTo(HaveOccurred())

		httpServer := httptest.NewServer(handler)
		DeferCleanup(httpServer.Close)

		config.BaseURL = httpServer.URL

		GinkgoWriter.Printf("Started emulator at %s\n", config.BaseURL)
	}

	client = api.NewAPIClientWithConfig(config)
})

var _ = BeforeEach(func() {
	ctx = context.Background()

	Expect(client.RemoveAllDatabases(ctx)).To(Succeed())
})

func TestSuites(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Test Suites")
}

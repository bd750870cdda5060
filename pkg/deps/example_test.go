package deps_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/tstore/pkg/deps"
	"github.com/matzehuels/tstore/pkg/registry"
	"github.com/matzehuels/tstore/pkg/registrytest"
)

func ExampleParseReference() {
	ref, _ := deps.ParseReference("bbepis-BepInExPack-5.4.2100")
	fmt.Println(ref.Namespace, ref.Name, ref.Version)
	// Output: bbepis BepInExPack 5.4.2100
}

func TestResolverAgainstRegistry(t *testing.T) {
	srv := registrytest.New(t)
	srv.AddPackage("Me", "Modpack", "1.0.0", "Me-Core-1.0.0", "Other-Lib-2.0.0")
	srv.AddPackage("Me", "Core", "1.1.0", "Other-Lib-2.0.0")
	srv.AddPackage("Other", "Lib", "2.0.0")

	r := deps.NewResolver(registry.NewClient(srv.URL), deps.Options{})
	set, err := r.Resolve(context.Background(), "Me", "Modpack")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := []string{"Other-Lib", "Me-Core", "Me-Modpack"}
	if got := set.FullNames(); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("FullNames() = %v, want %v", got, want)
	}
	if n := srv.FetchCount("Other-Lib"); n != 2 {
		t.Errorf("Other-Lib fetched %d times, want 2", n)
	}
	if n := srv.FetchCount("Me-Modpack"); n != 1 {
		t.Errorf("root fetched %d times, want 1", n)
	}
}

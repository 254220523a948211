package testutil

import (
	"sync"

	"github.com/go-git/go-git/v5/plumbing/transport/client"
	"github.com/go-git/go-git/v5/plumbing/transport/server"
)

var installOnce sync.Once

// ServeLocalRepos makes go-git serve file URLs and plain paths in process,
// so clones of a TestRepo's GitDir work without a git binary.
func ServeLocalRepos() {
	installOnce.Do(func() {
		client.InstallProtocol("file", server.DefaultServer)
	})
}

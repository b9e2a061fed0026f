package repository

import "context"

// GitRepository provides read-only access to the local checkout. It exists so
// (owner, repo) and the working branch can be derived when the environment
// does not provide them; no git state is ever mutated.

type GitRepository interface {
	// OriginOwnerRepo derives the owner and repository name from the origin
	// remote URL.
	OriginOwnerRepo(ctx context.Context) (owner, repo string, err error)
	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)
}

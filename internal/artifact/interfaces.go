package artifact

import "github.com/sqve/git-artifact/internal/git"

// Repository is the set of git capabilities an artifact run uses.
// *git.Repository implements it.
type Repository interface {
	Path() string
	GitPath(name string) (string, error)

	CurrentBranch() (string, error)
	BranchListing() ([]string, error)
	TagsAtHead() ([]string, error)
	HeadCommit() (string, error)
	IsBranchOrTag(name string) (bool, error)
	BranchExists(name string) (bool, error)

	CheckoutNewBranch(name string) error
	Checkout(ref string) error
	DeleteBranch(name string) error

	StageAll() error
	Unstage(path string) error
	Commit(message string) error
	ListIgnoredTracked(excludeFile string) ([]string, error)
	ListOtherFiles() ([]string, error)
	ChangedFiles(commit string) ([]git.ChangedFile, error)

	RemoteExists(name string) (bool, error)
	AddRemote(name, url string) error
	RemoveRemote(name string) error
	Push(remote, localBranch, remoteBranch string, force bool) error
}

var _ Repository = (*git.Repository)(nil)

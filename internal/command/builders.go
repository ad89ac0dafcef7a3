package command

// GitProgram is the default version-control binary
const GitProgram = "git"

// GitInit builds a git init command
func GitInit() Command {
	return Command{
		Name: GitProgram,
		Args: []string{"init"},
	}
}

// GitCloneOptions represents options for git clone command
type GitCloneOptions struct {
	Dest   string
	Branch string
}

// GitClone builds a git clone command. Destination and branch are optional.
// Positional arguments follow "--" so a URL cannot be read as an option.
func GitClone(url string, opts GitCloneOptions) Command {
	args := []string{"clone"}

	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	args = append(args, "--", url)
	if opts.Dest != "" {
		args = append(args, opts.Dest)
	}

	return Command{
		Name: GitProgram,
		Args: args,
	}
}

// GitCheckout builds a git checkout command
func GitCheckout(name string) Command {
	return Command{
		Name: GitProgram,
		Args: []string{"checkout", name},
	}
}

// GitCheckoutNewBranch builds a git checkout -b command, optionally starting
// the new branch from parent
func GitCheckoutNewBranch(name, parent string) Command {
	args := []string{"checkout", "-b", name}

	if parent != "" {
		args = append(args, parent)
	}

	return Command{
		Name: GitProgram,
		Args: args,
	}
}

// GitCurrentBranch builds a command printing the short name of HEAD
func GitCurrentBranch() Command {
	return Command{
		Name: GitProgram,
		Args: []string{"symbolic-ref", "--short", "HEAD"},
	}
}

// GitShowBranchRef builds a command that succeeds only if the local branch exists
func GitShowBranchRef(name string) Command {
	return Command{
		Name: GitProgram,
		Args: []string{"show-ref", "refs/heads/" + name},
	}
}

// GitUpstream builds a command printing the upstream of the current branch
func GitUpstream() Command {
	return Command{
		Name: GitProgram,
		Args: []string{"rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}"},
	}
}

// GitConfigGet builds a git config --get command
func GitConfigGet(key string) Command {
	return Command{
		Name: GitProgram,
		Args: []string{"config", "--get", key},
	}
}

// GitLocalBranches builds a command listing local branch names, one per line
func GitLocalBranches() Command {
	return Command{
		Name: GitProgram,
		Args: []string{"for-each-ref", "--format=%(refname:short)", "refs/heads/"},
	}
}

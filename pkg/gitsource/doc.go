// Package gitsource reads whiteboard sources as committed in a Git
// repository, so an earlier revision of a document can be compiled without
// checking it out.
//
// # Usage
//
//	repo, err := gitsource.Open(".")
//	if err != nil {
//	    return err
//	}
//	src, commit, err := repo.ReadFile("HEAD~1", "notes/hw1.txt")
//	if err != nil {
//	    return err
//	}
//	fmt.Println("compiling", commit.ShortSHA())
//
// ChangedFiles lists the sources that differ between two revisions, for
// recompiling only what a commit touched.
package gitsource

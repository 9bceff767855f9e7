package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hwidmann/rootline/pkg/tree"
)

// sampleCommand creates the sample command for generating a demo tree.
func (c *CLI) sampleCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a generated sample family tree",
		Long: `Write a generated sample family tree.

The sample covers three generations with spouses, siblings, and dated
claims, which exercises every chart type. Person ids are fresh UUIDs on
every run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, rootID := sampleTree()
			if err := tree.WriteTreeFile(t, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Sample tree written")
			printFile(output)
			printDetail("Root person: %s", rootID)
			printNewline()
			printNextStep("Layout", fmt.Sprintf("rootline layout %s --root %s", output, rootID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "sample.json", "output file")

	return cmd
}

// sampleTree builds a three-generation demo tree and returns it with
// the id of the suggested root person.
func sampleTree() (tree.Tree, string) {
	ids := make(map[string]string)
	id := func(key string) string {
		if v, ok := ids[key]; ok {
			return v
		}
		v := uuid.NewString()
		ids[key] = v
		return v
	}

	people := []tree.Person{
		{ID: id("root"), GivenName: "Claire", Surname: "Hale", Living: true, BirthDate: "1968-04-02"},
		{ID: id("sibling"), GivenName: "Daniel", Surname: "Hale", Living: true, BirthDate: "1971-11-19"},
		{ID: id("spouse"), GivenName: "Marta", Surname: "Iver", Living: true, BirthDate: "1969-08-23"},
		{ID: id("child1"), GivenName: "Nora", Surname: "Hale", Living: true, BirthDate: "1994-02-14"},
		{ID: id("child2"), GivenName: "Owen", Surname: "Hale", Living: true, BirthDate: "1997-06-30"},
		{ID: id("father"), GivenName: "Edmund", Surname: "Hale", BirthDate: "1936-01-12", DeathDate: "2008-03-05"},
		{ID: id("mother"), GivenName: "Ruth", Surname: "Voss", BirthDate: "1940-09-27", DeathDate: "2019-12-01"},
		{ID: id("grandfather"), GivenName: "Albert", Surname: "Hale", BirthDate: "1908", DeathDate: "1985-07"},
		{ID: id("grandmother"), GivenName: "Ida", Surname: "Brandt", BirthDate: "1912-05", DeathDate: "1990"},
	}

	relationships := []tree.Relationship{
		{Type: "parent_child", Person1: id("father"), Person2: id("root")},
		{Type: "parent_child", Person1: id("mother"), Person2: id("root")},
		{Type: "parent_child", Person1: id("father"), Person2: id("sibling")},
		{Type: "parent_child", Person1: id("mother"), Person2: id("sibling")},
		{Type: "parent_child", Person1: id("root"), Person2: id("child1")},
		{Type: "parent_child", Person1: id("spouse"), Person2: id("child1")},
		{Type: "parent_child", Person1: id("root"), Person2: id("child2")},
		{Type: "parent_child", Person1: id("spouse"), Person2: id("child2")},
		{Type: "parent_child", Person1: id("grandfather"), Person2: id("father")},
		{Type: "parent_child", Person1: id("grandmother"), Person2: id("father")},
		{Type: "spouse", Person1: id("root"), Person2: id("spouse")},
		{Type: "spouse", Person1: id("father"), Person2: id("mother")},
		{Type: "spouse", Person1: id("grandfather"), Person2: id("grandmother")},
		{Type: "sibling", Person1: id("root"), Person2: id("sibling")},
	}

	claims := []tree.Claim{
		{SubjectID: id("root"), Type: "marriage", Value: tree.ClaimValue{Date: "1992-05-16"}},
		{SubjectID: id("spouse"), Type: "marriage", Value: tree.ClaimValue{Date: "1992-05-16"}},
		{SubjectID: id("root"), Type: "occupation", Value: tree.ClaimValue{Date: "1990", IsCurrent: true, Description: "Cartographer"}},
		{SubjectID: id("father"), Type: "military_service", Value: tree.ClaimValue{Date: "1956", DateEnd: "1958"}},
		{SubjectID: id("father"), Type: "residence", Value: tree.ClaimValue{Date: "1960-03", DateEnd: "2008-03", Description: "Linden Street"}},
		{SubjectID: id("mother"), Type: "occupation", Value: tree.ClaimValue{Date: "1962", DateEnd: "2001", Description: "Librarian"}},
		{SubjectID: id("grandfather"), Type: "marriage", Value: tree.ClaimValue{Date: "1931-09"}},
	}

	return tree.Tree{People: people, Relationships: relationships, Claims: claims}, id("root")
}

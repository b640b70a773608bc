package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/overlaykit/internal/keymap"
)

func TestBuilderKeepsInsertionOrder(t *testing.T) {
	tree := Build(func(b *Builder) {
		b.Item("Cut", "story::Cut").
			Item("Copy", "story::Copy").
			Item("Paste", "story::Paste").
			Separator().
			ItemWithIcon("Search", IconSearch, "story::SearchAll").
			Separator().
			Check("Window Mode", true, "story::ToggleWindowMode").
			Separator().
			Link("GitHub Repository", IconGitHub, "https://example.com/repo")
	})

	nodes := tree.Nodes()
	require.Len(t, nodes, 9)
	kinds := make([]Kind, len(nodes))
	for i, n := range nodes {
		kinds[i] = n.Kind
	}
	assert.Equal(t, []Kind{
		KindAction, KindAction, KindAction, KindSeparator,
		KindAction, KindSeparator, KindCheckable, KindSeparator, KindLink,
	}, kinds)
	assert.Equal(t, IconSearch, nodes[4].Icon)
	assert.True(t, nodes[6].Checked)
	assert.Equal(t, keymap.Action("story::ToggleWindowMode"), nodes[6].Action)
	assert.Equal(t, "https://example.com/repo", nodes[8].URI)
	assert.Equal(t, "github-repository", nodes[8].ID)
}

func TestSubmenuNests(t *testing.T) {
	tree := Build(func(b *Builder) {
		b.Item("Copy", "story::Copy").
			Submenu("Settings", func(b *Builder) {
				b.Item("Toggle Window Mode", "story::ToggleWindowMode").
					Separator().
					Submenu("Deeper", func(b *Builder) {
						b.Item("Search All", "story::SearchAll")
					})
			})
	})

	settings, ok := tree.Find("settings")
	require.True(t, ok)
	assert.Equal(t, KindSubmenu, settings.Kind)
	require.Len(t, settings.Children, 3)

	leaf, ok := tree.Find("settings/deeper/search-all")
	require.True(t, ok)
	assert.Equal(t, keymap.Action("story::SearchAll"), leaf.Action)

	_, ok = tree.Find("settings/missing")
	assert.False(t, ok)
}

func TestSeparatorsCollapse(t *testing.T) {
	tree := Build(func(b *Builder) {
		b.Separator().Item("A", "a").Separator().Separator().Item("B", "b").Separator()
	})
	nodes := tree.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, KindSeparator, nodes[1].Kind)
	assert.False(t, tree.Empty())
	assert.True(t, Build(func(b *Builder) { b.Separator() }).Empty())
}

func TestIDsAreUnique(t *testing.T) {
	tree := Build(func(b *Builder) {
		b.Item("Copy", "a").Separator().Item("Copy", "b").Separator().Item("Paste", "c")
	})
	nodes := tree.Nodes()
	assert.Equal(t, "copy", nodes[0].ID)
	assert.Equal(t, "separator", nodes[1].ID)
	assert.Equal(t, "copy-2", nodes[2].ID)
	assert.Equal(t, "separator-2", nodes[3].ID)
}

func TestNodesReturnsCopy(t *testing.T) {
	tree := Build(func(b *Builder) {
		b.Submenu("Settings", func(b *Builder) { b.Item("A", "a") })
	})
	nodes := tree.Nodes()
	nodes[0].Children[0].Label = "mutated"
	again, _ := tree.Find("settings/a")
	assert.Equal(t, "A", again.Label)
}

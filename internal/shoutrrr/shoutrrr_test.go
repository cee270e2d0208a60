package shoutrrr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_addDefaultTitle(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		address        string
		defaultTitle   string
		updatedAddress string
	}{
		"generic_with_empty_title": {
			address:        "generic://example.com?title=",
			defaultTitle:   "netscope",
			updatedAddress: "generic://example.com?title=",
		},
		"generic_with_title": {
			address:        "generic://example.com?title=MyTitle",
			defaultTitle:   "netscope",
			updatedAddress: "generic://example.com?title=MyTitle",
		},
		"generic_without_title": {
			address:        "generic://example.com",
			defaultTitle:   "netscope",
			updatedAddress: "generic://example.com?title=netscope",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			updatedAddress := addDefaultTitle(testCase.address, testCase.defaultTitle)

			assert.Equal(t, testCase.updatedAddress, updatedAddress)
		})
	}
}

func Test_New(t *testing.T) {
	t.Parallel()

	t.Run("no address", func(t *testing.T) {
		t.Parallel()

		client, err := New(Settings{})
		require.NoError(t, err)

		assert.Equal(t, "netscope", client.defaultTitle)
		assert.Empty(t, client.serviceNames)
		client.Notify("message")
	})

	t.Run("addresses", func(t *testing.T) {
		t.Parallel()

		settings := Settings{
			Addresses: []string{
				"generic://example.com",
				"generic://example.org?title=Custom",
			},
			DefaultTitle: "Home",
		}
		client, err := New(settings)
		require.NoError(t, err)

		assert.Equal(t, []string{"generic", "generic"}, client.serviceNames)
	})

	t.Run("unknown service", func(t *testing.T) {
		t.Parallel()

		settings := Settings{
			Addresses: []string{"unknownservice://example.com"},
		}
		client, err := New(settings)

		require.Error(t, err)
		assert.Nil(t, client)
	})
}

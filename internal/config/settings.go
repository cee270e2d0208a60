package config

import (
	"fmt"

	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Config struct {
	Client   Client
	Fetch    Fetch
	Widget   Widget
	Server   Server
	Health   Health
	Resolver Resolver
	Logger   Logger
	Shoutrrr Shoutrrr
}

func (c *Config) SetDefaults() {
	c.Client.setDefaults()
	c.Fetch.setDefaults()
	c.Widget.setDefaults()
	c.Server.setDefaults()
	c.Health.SetDefaults()
	c.Resolver.setDefaults()
	c.Logger.setDefaults()
	c.Shoutrrr.setDefaults()
}

func (c Config) Validate() (err error) {
	type validator interface {
		Validate() (err error)
	}
	toValidate := []struct {
		name      string
		validator validator
	}{
		{name: "client", validator: &c.Client},
		{name: "fetch", validator: &c.Fetch},
		{name: "widget", validator: &c.Widget},
		{name: "server", validator: &c.Server},
		{name: "health", validator: &c.Health},
		{name: "resolver", validator: &c.Resolver},
		{name: "logger", validator: &c.Logger},
		{name: "shoutrrr", validator: &c.Shoutrrr},
	}

	for _, v := range toValidate {
		err = v.validator.Validate()
		if err != nil {
			return fmt.Errorf("%s settings: %w", v.name, err)
		}
	}

	return nil
}

func (c Config) String() string {
	return c.toLinesNode().String()
}

func (c Config) toLinesNode() *gotree.Node {
	node := gotree.New("Settings summary:")
	node.AppendNode(c.Client.toLinesNode())
	node.AppendNode(c.Fetch.toLinesNode())
	node.AppendNode(c.Widget.toLinesNode())
	node.AppendNode(c.Server.toLinesNode())
	node.AppendNode(c.Health.toLinesNode())
	node.AppendNode(c.Resolver.toLinesNode())
	node.AppendNode(c.Logger.toLinesNode())
	if shoutrrrNode := c.Shoutrrr.toLinesNode(); shoutrrrNode != nil {
		node.AppendNode(shoutrrrNode)
	}
	return node
}

func (c *Config) Read(reader *reader.Reader) (err error) {
	err = c.Client.read(reader)
	if err != nil {
		return fmt.Errorf("reading client settings: %w", err)
	}

	err = c.Fetch.read(reader)
	if err != nil {
		return fmt.Errorf("reading fetch settings: %w", err)
	}

	err = c.Widget.read(reader)
	if err != nil {
		return fmt.Errorf("reading widget settings: %w", err)
	}

	err = c.Server.read(reader)
	if err != nil {
		return fmt.Errorf("reading server settings: %w", err)
	}

	c.Health.Read(reader)

	err = c.Resolver.read(reader)
	if err != nil {
		return fmt.Errorf("reading resolver settings: %w", err)
	}

	err = c.Logger.read(reader)
	if err != nil {
		return fmt.Errorf("reading logger settings: %w", err)
	}

	c.Shoutrrr.read(reader)

	return nil
}

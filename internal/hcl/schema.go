package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Frames      []*framesBlock    `hcl:"frames,block"`
	Static      []*staticBlock    `hcl:"static_transform,block"`
	Dynamic     []*dynamicBlock   `hcl:"dynamic_transform,block"`
	Components  []*componentBlock `hcl:"component,block"`
	Tasks       []*taskBlock      `hcl:"task,block"`
	Connections []*connectBlock   `hcl:"connect,block"`
	Remain      hcl.Body          `hcl:",remain"`
}

type framesBlock struct {
	Names []string `hcl:"names"`
}

type staticBlock struct {
	From        string         `hcl:"from,label"`
	To          string         `hcl:"to,label"`
	Translation hcl.Expression `hcl:"translation,optional"`
	Rotation    hcl.Expression `hcl:"rotation,optional"`
}

type dynamicBlock struct {
	From     string `hcl:"from,label"`
	To       string `hcl:"to,label"`
	Producer string `hcl:"producer"`
}

type componentBlock struct {
	Name    string       `hcl:"name,label"`
	Inputs  []*portBlock `hcl:"input,block"`
	Outputs []*portBlock `hcl:"output,block"`
	Needs   []*needBlock `hcl:"needs,block"`
}

type portBlock struct {
	Name  string `hcl:"name,label"`
	Frame string `hcl:"frame,optional"`
	From  string `hcl:"from,optional"`
	To    string `hcl:"to,optional"`
}

type needBlock struct {
	From string `hcl:"from,label"`
	To   string `hcl:"to,label"`
}

type taskBlock struct {
	Name      string           `hcl:"name,label"`
	Component string           `hcl:"component"`
	Frames    hcl.Expression   `hcl:"frames,optional"`
	Children  []string         `hcl:"children,optional"`
	Producers []*producerBlock `hcl:"producer,block"`
	Device    *deviceBlock     `hcl:"device,block"`
}

type producerBlock struct {
	From     string `hcl:"from,label"`
	To       string `hcl:"to,label"`
	Producer string `hcl:"producer"`
}

type deviceBlock struct {
	Name  string `hcl:"name,label"`
	Port  string `hcl:"port"`
	Frame string `hcl:"frame,optional"`
	From  string `hcl:"from,optional"`
	To    string `hcl:"to,optional"`
}

type connectBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

package eclbin

import (
	"fmt"

	"github.com/A31Nesta/EcLang/lang"
	"github.com/A31Nesta/EcLang/node"
	"github.com/A31Nesta/EcLang/value"
)

type decoder struct {
	c    *cursor
	lang *lang.Language
	ctx  FileContext

	roots      []*node.Node
	scopeStack []*node.Node

	curNode  *node.Node
	curClass *lang.Class // nil for an unregistered ("custom") class

	templatePath         []*node.Node
	haveExternalTemplate bool
}

// Decode reads a single-pass instruction stream (the file header
// already stripped by the caller) and reconstructs a node tree, per
// spec.md §4.H. ctx resolves INCLUDE/TEMPLATE operands.
func Decode(data []byte, language *lang.Language, ctx FileContext) (*Result, error) {
	d := &decoder{c: &cursor{data: data}, lang: language, ctx: ctx}
	for d.c.pos < len(data) {
		op, err := d.c.readByte()
		if err != nil {
			return nil, err
		}
		if err := d.step(op); err != nil {
			return nil, err
		}
	}
	return &Result{Roots: d.roots, TemplatePath: d.templatePath}, nil
}

func (d *decoder) step(op byte) error {
	switch op {
	case opCreate:
		return d.decodeCreate()
	case opAttribute:
		return d.decodeAttribute()
	case opScopeEnter:
		if d.curNode != nil {
			d.scopeStack = append(d.scopeStack, d.curNode)
		}
		return nil
	case opScopeExit:
		// Tolerant: popping an empty stack is a defensive no-op
		// (spec.md §4.H).
		if len(d.scopeStack) > 0 {
			d.scopeStack = d.scopeStack[:len(d.scopeStack)-1]
		}
		return nil
	case opInclude:
		return d.decodeInclude()
	case opTemplate:
		return d.decodeTemplate()
	case opMarkTemplate:
		d.templatePath = append([]*node.Node(nil), d.scopeStack...)
		return nil
	default:
		return fmt.Errorf("eclbin: unknown instruction byte 0x%02x", op)
	}
}

func (d *decoder) attach(n *node.Node) {
	if len(d.scopeStack) == 0 {
		d.roots = append(d.roots, n)
		return
	}
	d.scopeStack[len(d.scopeStack)-1].AddChild(n)
}

func (d *decoder) decodeCreate() error {
	classIDByte, err := d.c.readByte()
	if err != nil {
		return err
	}

	var className string
	var class *lang.Class
	if classIDByte == customRef {
		_, name, err := d.c.readString()
		if err != nil {
			return err
		}
		className = name
	} else {
		c, ok := d.lang.ClassByID(int(classIDByte))
		if !ok {
			return fmt.Errorf("eclbin: unknown class id %d", classIDByte)
		}
		class = c
		className = c.Name
	}

	_, name, err := d.c.readString()
	if err != nil {
		return err
	}

	n := node.New(className, name, d.ctx.FileID())
	d.attach(n)
	d.curNode = n
	d.curClass = class
	return nil
}

func (d *decoder) decodeAttribute() error {
	if d.curNode == nil {
		return fmt.Errorf("eclbin: ATTRIBUTE with no current node")
	}
	idByte, err := d.c.readByte()
	if err != nil {
		return err
	}
	if idByte == customRef {
		_, name, err := d.c.readString()
		if err != nil {
			return err
		}
		_, val, err := d.c.readString()
		if err != nil {
			return err
		}
		d.curNode.AddAttr(node.Attr{Name: name, Type: value.STRING, Value: value.NewString(val)})
		return nil
	}
	if d.curClass == nil {
		return fmt.Errorf("eclbin: attribute id %d on node %q of unregistered class %q", idByte, d.curNode.Name, d.curNode.Class)
	}
	attr, ok := d.curClass.AttrByID(int(idByte))
	if !ok {
		return fmt.Errorf("eclbin: unknown attribute id %d on class %q", idByte, d.curClass.Name)
	}
	val, err := decodeValue(d.c, attr.Type)
	if err != nil {
		return fmt.Errorf("eclbin: decoding attribute %q: %w", attr.Name, err)
	}
	d.curNode.AddAttr(node.Attr{Name: attr.Name, Type: attr.Type, Value: val})
	return nil
}

func (d *decoder) decodeInclude() error {
	_, path, err := d.c.readString()
	if err != nil {
		return err
	}
	roots, _, err := d.ctx.Include(path)
	if err != nil {
		return fmt.Errorf("eclbin: include %q: %w", path, err)
	}
	for _, r := range roots {
		d.attach(r)
	}
	return nil
}

func (d *decoder) decodeTemplate() error {
	_, path, err := d.c.readString()
	if err != nil {
		return err
	}
	if d.haveExternalTemplate {
		return fmt.Errorf("eclbin: a file may import at most one template, already imported one")
	}
	roots, templatePath, _, err := d.ctx.Template(path)
	if err != nil {
		return fmt.Errorf("eclbin: template %q: %w", path, err)
	}
	d.haveExternalTemplate = true
	for _, r := range roots {
		d.attach(r)
	}
	d.scopeStack = append(d.scopeStack, templatePath...)
	return nil
}

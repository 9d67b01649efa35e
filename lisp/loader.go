package lisp

import "fmt"

// Load a string of lisp code/data into the environment.
func (l Lisp) Load(data string) error {
	sexprs, err := Multiparse(data)
	if err != nil {
		return err
	}
	for _, def := range sexprs {
		_, err := l.EvalExpr(def)
		if err != nil {
			return err
		}
	}

	return nil
}

// LoadFile loads every expression in filename.
func (l Lisp) LoadFile(filename string) error {
	sexprs, err := ParseFile(filename)
	if err != nil {
		return fmt.Errorf("load %s: %w", filename, err)
	}
	for _, def := range sexprs {
		if _, err := l.EvalExpr(def); err != nil {
			return fmt.Errorf("load %s: %w", filename, err)
		}
	}
	return nil
}

// Package arguments builds the compiler argument list sent with a
// completion request.
package arguments

import (
	"context"

	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
	"github.com/teranos/codecomplete/sdk"
)

// Compiler flags the resolver itself inserts
const (
	PrimaryFileFlag = "-c"
	SDKFlag         = "-sdk"
)

// BadModuleName is the description of the error returned for an unknown module
const BadModuleName = "Bad module name"

// List is an ordered compiler argument list
type List []string

// Contains reports whether arg appears in the list by value
func (l List) Contains(arg string) bool {
	for _, a := range l {
		if a == arg {
			return true
		}
	}
	return false
}

// Input selects where arguments come from: RawArgs or Module.
type Input interface {
	isInput()
}

// RawArgs are caller-supplied compiler arguments
type RawArgs struct {
	Args []string
}

// Module names a build-system module whose arguments are looked up
type Module struct {
	Name string
}

func (RawArgs) isInput() {}
func (Module) isInput()  {}

// InputFor returns Module when module is non-empty and RawArgs otherwise.
// Raw arguments are discarded when a module is named.
func InputFor(module string, raw []string) Input {
	if module != "" {
		return Module{Name: module}
	}
	return RawArgs{Args: raw}
}

// ModuleLookup returns the precomputed argument list for a module
type ModuleLookup interface {
	Arguments(name string) ([]string, error)
}

// Resolver turns an Input into a List
type Resolver struct {
	sdk     sdk.Discoverer
	modules ModuleLookup
}

// NewResolver creates a Resolver. discoverer is only consulted for raw
// arguments and modules only for named modules.
func NewResolver(discoverer sdk.Discoverer, modules ModuleLookup) *Resolver {
	return &Resolver{sdk: discoverer, modules: modules}
}

// Resolve builds the argument list for the source at path.
//
// Raw arguments become ["-c", path, raw...], followed by "-sdk <path>"
// unless raw already contains "-sdk". A module is replaced by its
// build-system argument list verbatim; an unknown module is an
// InvalidArgument error.
func (r *Resolver) Resolve(ctx context.Context, path string, in Input) (List, error) {
	log := logger.ComponentLogger("arguments")

	switch in := in.(type) {
	case Module:
		if r.modules == nil {
			return nil, errors.InvalidArgument(BadModuleName)
		}
		args, err := r.modules.Arguments(in.Name)
		if err != nil {
			log.Debugw("Module lookup failed", logger.FieldModule, in.Name, logger.FieldError, err)
			return nil, errors.InvalidArgument(BadModuleName)
		}
		log.Debugw("Using module arguments", logger.FieldModule, in.Name, logger.FieldCount, len(args))
		return List(args), nil

	case RawArgs:
		args := make(List, 0, len(in.Args)+4)
		args = append(args, PrimaryFileFlag, path)
		args = append(args, in.Args...)

		if !args.Contains(SDKFlag) {
			if r.sdk == nil {
				return nil, errors.Wrap(errors.ErrSDKNotFound, "no sdk discoverer configured")
			}
			sdkPath, err := r.sdk.Path(ctx)
			if err != nil {
				return nil, err
			}
			args = append(args, SDKFlag, sdkPath)
		}
		log.Debugw("Using raw arguments", logger.FieldCount, len(args))
		return args, nil

	default:
		return nil, errors.Newf("unsupported argument input %T", in)
	}
}

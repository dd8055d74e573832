package hookline

// invoker runs a snapshot of callbacks.
// With a stack set, each callback's identity is pushed for the duration of its call.
type invoker struct {
	stack   *Stack
	recover bool
}

// action invokes every entry in order, discarding results. When truncate is false
// every entry receives all args regardless of its accepted count.
func (in invoker) action(name HookName, entries []Registered, args []any, truncate bool) error {
	for _, r := range entries {
		callArgs := args
		if truncate {
			callArgs = limitArgs(args, r.AcceptedArgs)
		}
		if _, err := in.call(name, r, callArgs); err != nil {
			return err
		}
	}
	return nil
}

// filter threads value through every entry in order. Each entry receives value
// followed by args, cut to its accepted count.
func (in invoker) filter(name HookName, entries []Registered, value any, args []any) (any, error) {
	if len(entries) == 0 {
		return value, nil
	}

	full := make([]any, 1+len(args))
	copy(full[1:], args)

	for _, r := range entries {
		full[0] = value
		out, err := in.call(name, r, limitArgs(full, r.AcceptedArgs))
		if err != nil {
			return nil, err
		}
		value = out
	}
	return value, nil
}

func (in invoker) call(name HookName, r Registered, args []any) (result any, err error) {
	id, err := r.Callback.Identity()
	if err != nil {
		return nil, err
	}

	if in.stack != nil {
		release := in.stack.enterCallback(id)
		defer release()
	}

	if in.recover {
		defer func() {
			if recovered := recover(); recovered != nil {
				result = nil
				err = &PanicError{Hook: name, Callback: id, Recovered: recovered}
			}
		}()
	}

	// Callbacks get their own copy so they cannot disturb the next call's arguments.
	callArgs := make([]any, len(args))
	copy(callArgs, args)
	return r.Callback.Invoke(callArgs...)
}

// limitArgs returns at most n leading args.
func limitArgs(args []any, n int) []any {
	if n < len(args) {
		return args[:n]
	}
	return args
}

package appcontext

const (
	EnvServer Env = iota
	EnvCLI
	EnvTest
)

type Env int

func (e Env) String() string {
	switch e {
	case EnvServer:
		return "server"
	case EnvCLI:
		return "cli"
	case EnvTest:
		return "test"
	default:
		return "unknown"
	}
}

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}

package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos estándar HTTP.

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field {
	return zap.Int64("duration_ms", v)
}

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// ClientIP crea un campo para la IP del cliente.
func ClientIP(v string) zap.Field {
	return zap.String("client_ip", v)
}

// Duration crea un campo para una duración arbitraria.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// Campos estándar de negocio.

// UserID crea un campo para el ID del usuario.
func UserID(v string) zap.Field {
	return zap.String("user_id", v)
}

// Username crea un campo para el username.
func Username(v string) zap.Field {
	return zap.String("username", v)
}

// Email crea un campo para un email (enmascarar antes con util.MaskEmail).
func Email(v string) zap.Field {
	return zap.String("email", v)
}

// TargetType crea un campo para el tipo de target de un engagement.
func TargetType(v string) zap.Field {
	return zap.String("target_type", v)
}

// TargetID crea un campo para el ID del target de un engagement.
func TargetID(v string) zap.Field {
	return zap.String("target_id", v)
}

// VideoID crea un campo para el ID de un video.
func VideoID(v string) zap.Field {
	return zap.String("video_id", v)
}

// CounterBefore registra el valor del contador antes de una reconciliación.
func CounterBefore(v int64) zap.Field {
	return zap.Int64("counter_before", v)
}

// CounterAfter registra el valor del contador después de una reconciliación.
func CounterAfter(v int64) zap.Field {
	return zap.Int64("counter_after", v)
}

// Campos de infraestructura.

// Layer identifica la capa (controller, service, store).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Component identifica el componente dentro de la capa.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op identifica la operación en curso.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

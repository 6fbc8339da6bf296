package notificacion

import "fmt"

// Plantillas HTML de los correos del ciclo de vida. El renderizado con
// logo embebido corre en el servicio de templates externo; acá solo se
// arma el cuerpo base en español.

// CuerpoConfirmacion correo con el enlace/token de confirmación del registro.
func CuerpoConfirmacion(razonSocial, token string) (asunto, cuerpo string) {
	asunto = "Confirmá tu solicitud de registro"
	cuerpo = fmt.Sprintf(`<p>Hola %s,</p>
<p>Recibimos tu solicitud de registro en el Registro de Empresas Exportadoras de Catamarca.</p>
<p>Tu código de confirmación es: <strong>%s</strong></p>
<p>Un equipo de la Dirección revisará la presentación y te avisaremos por este medio.</p>`,
		razonSocial, token)
	return asunto, cuerpo
}

// CuerpoAprobacion correo de aprobación con el recordatorio de credenciales:
// el login es el correo del contacto principal y la clave inicial es el CUIT.
func CuerpoAprobacion(razonSocial, email, cuit string) (asunto, cuerpo string) {
	asunto = "Tu solicitud fue aprobada"
	cuerpo = fmt.Sprintf(`<p>Felicitaciones %s,</p>
<p>Tu solicitud fue aprobada y la empresa ya forma parte del registro.</p>
<p>Podés ingresar al sistema con:</p>
<ul>
<li>Usuario: <strong>%s</strong></li>
<li>Contraseña inicial: tu CUIT (<strong>%s</strong>)</li>
</ul>
<p>Por seguridad, el sistema te pedirá cambiar la contraseña en el primer ingreso.</p>`,
		razonSocial, email, cuit)
	return asunto, cuerpo
}

// CuerpoRechazo correo de rechazo con las observaciones del revisor.
func CuerpoRechazo(razonSocial, observaciones string) (asunto, cuerpo string) {
	asunto = "Tu solicitud fue rechazada"
	cuerpo = fmt.Sprintf(`<p>Hola %s,</p>
<p>Lamentamos informarte que tu solicitud de registro fue rechazada.</p>
<p>Observaciones: %s</p>
<p>Podés volver a presentarte corrigiendo los puntos señalados.</p>`,
		razonSocial, observaciones)
	return asunto, cuerpo
}

// CuerpoRecuperacion correo con el token de recuperación de contraseña
// (válido por 24 horas, de un solo uso).
func CuerpoRecuperacion(token string) (asunto, cuerpo string) {
	asunto = "Recuperación de contraseña"
	cuerpo = fmt.Sprintf(`<p>Recibimos un pedido de recuperación de contraseña.</p>
<p>Tu código es: <strong>%s</strong></p>
<p>Vence en 24 horas y solo puede usarse una vez. Si no pediste el cambio, ignorá este correo.</p>`,
		token)
	return asunto, cuerpo
}

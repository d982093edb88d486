package handlers

import (
	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rweb"
)

// UIHandler serves the chat interface
func UIHandler(c rweb.Context) error {
	return c.WriteHTML(generateChatUI())
}

func generateChatUI() string {
	b := element.NewBuilder()

	b.Html().R(
		b.Head().R(
			b.Title().T("SAM - Personal Assistant"),
			b.Meta("charset", "UTF-8"),
			b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1"),
			b.Style().T(`
				body {
					background: #1a1a1a;
					color: #e0e0e0;
					font-family: sans-serif;
					margin: 0;
					display: flex;
					flex-direction: column;
					height: 100vh;
				}
				header {
					padding: 14px 20px;
					background: #222;
					border-bottom: 1px solid #333;
					font-size: 18px;
					font-weight: bold;
				}
				#messages {
					flex: 1;
					overflow-y: auto;
					padding: 20px;
					max-width: 800px;
					width: 100%;
					margin: 0 auto;
					box-sizing: border-box;
				}
				.msg {
					margin-bottom: 12px;
					padding: 10px 14px;
					border-radius: 8px;
					max-width: 80%;
					white-space: pre-wrap;
				}
				.msg.user {
					background: #2d4a6e;
					margin-left: auto;
				}
				.msg.assistant {
					background: #2a2a2a;
				}
				#composer {
					display: flex;
					gap: 10px;
					padding: 16px 20px;
					background: #222;
					border-top: 1px solid #333;
				}
				#input {
					flex: 1;
					background: #333;
					color: white;
					border: none;
					padding: 12px;
					font-size: 14px;
					border-radius: 6px;
					outline: none;
				}
				button {
					padding: 12px 24px;
					background: #4a9eff;
					color: white;
					border: none;
					cursor: pointer;
					border-radius: 6px;
				}
				button:disabled { opacity: 0.5; }
			`),
		),
		b.Body().R(
			b.Header().T("SAM"),
			b.Div("id", "messages").R(),
			b.Div("id", "composer").R(
				b.Input("id", "input", "type", "text",
					"placeholder", "Ask me anything, or try: check my calendar and note my first free slot"),
				b.Button("id", "send").T("Send"),
			),
			b.Script().T(`
				let sessionId = null;
				const messages = document.getElementById('messages');
				const input = document.getElementById('input');
				const sendBtn = document.getElementById('send');

				async function ensureSession() {
					if (sessionId) return sessionId;
					const resp = await fetch('/api/session', { method: 'POST' });
					const session = await resp.json();
					sessionId = session.id;
					return sessionId;
				}

				function addMessage(role, text) {
					const div = document.createElement('div');
					div.className = 'msg ' + role;
					div.textContent = text;
					messages.appendChild(div);
					messages.scrollTop = messages.scrollHeight;
				}

				async function send() {
					const text = input.value.trim();
					if (!text) return;
					input.value = '';
					addMessage('user', text);
					sendBtn.disabled = true;
					try {
						const id = await ensureSession();
						const resp = await fetch('/api/session/' + id + '/message', {
							method: 'POST',
							headers: { 'Content-Type': 'application/json' },
							body: JSON.stringify({ content: text })
						});
						const data = await resp.json();
						addMessage('assistant', data.reply || 'Sorry, something went wrong.');
					} catch (e) {
						addMessage('assistant', 'Sorry, I could not reach the server.');
					} finally {
						sendBtn.disabled = false;
						input.focus();
					}
				}

				sendBtn.addEventListener('click', send);
				input.addEventListener('keydown', (e) => {
					if (e.key === 'Enter') send();
				});
				input.focus();
			`),
		),
	)

	return b.String()
}

package server

import (
	"html/template"
	"net/http"
)

const iconSVG = `<svg width="64" height="64" viewBox="0 0 64 64" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="grad1" x1="0%" y1="0%" x2="100%" y2="100%">
      <stop offset="0%" style="stop-color:#4A90E2;stop-opacity:1" />
      <stop offset="100%" style="stop-color:#357ABD;stop-opacity:1" />
    </linearGradient>
  </defs>
  <rect width="64" height="64" rx="12" fill="url(#grad1)"/>
  <text x="32" y="40" font-family="Arial, sans-serif" font-size="24" font-weight="bold" text-anchor="middle" fill="white">XLM</text>
  <circle cx="32" cy="20" r="8" fill="white" opacity="0.3"/>
</svg>`

// handleIcon serves the Blink icon.
func (s *Server) handleIcon(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(iconSVG))
}

type previewData struct {
	BlinkURL          string
	IconURL           string
	NetworkPassphrase string
}

// handlePreview serves the social-preview HTML page with an embedded
// minimal wallet-connect UI.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	base := requestBaseURL(r)
	data := previewData{
		BlinkURL:          base + "/actions/transfer",
		IconURL:           base + "/actions/transfer/icon",
		NetworkPassphrase: s.cfg.Network.Passphrase,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := previewTemplate.Execute(w, data); err != nil {
		s.log.WithError(err).Error("failed to render preview page")
	}
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Send XLM on Stellar - Interactive Blink</title>

  <meta property="og:title" content="Send XLM on Stellar" />
  <meta property="og:description" content="Transfer XLM instantly with this interactive Blink. Send 1, 5, 10 XLM or custom amounts directly from the link!" />
  <meta property="og:image" content="{{.IconURL}}" />
  <meta property="og:url" content="{{.BlinkURL}}" />
  <meta property="og:type" content="website" />
  <meta property="og:site_name" content="Stellar XLM Transfer Blink" />

  <meta name="twitter:card" content="summary" />
  <meta name="twitter:title" content="Send XLM on Stellar" />
  <meta name="twitter:description" content="Transfer XLM instantly with this interactive Blink." />
  <meta name="twitter:image" content="{{.IconURL}}" />
  <meta name="twitter:url" content="{{.BlinkURL}}" />

  <meta name="description" content="Transfer XLM instantly with this interactive Blink. Send 1, 5, 10 XLM or custom amounts directly from the link!" />
  <link rel="icon" type="image/svg+xml" href="{{.IconURL}}" />

  <script src="https://unpkg.com/@creit.tech/stellar-wallets-kit@latest/dist/index.umd.js"></script>

  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      margin: 0; padding: 20px;
      background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
      color: white; min-height: 100vh;
      display: flex; align-items: center; justify-content: center;
    }
    .preview-container {
      max-width: 720px; text-align: center;
      background: rgba(255, 255, 255, 0.1);
      padding: 40px; border-radius: 20px;
      border: 1px solid rgba(255, 255, 255, 0.2);
    }
    .action-buttons {
      display: grid; grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
      gap: 16px; margin: 30px 0;
    }
    .action-btn {
      background: linear-gradient(135deg, #3b82f6, #1d4ed8);
      color: white; border: none; padding: 16px 20px;
      font-size: 1rem; border-radius: 12px; cursor: pointer; font-weight: 600;
    }
    .action-btn.secondary { background: linear-gradient(135deg, #f59e0b, #d97706); }
    .wallet-section, .transaction-form {
      background: rgba(255, 255, 255, 0.1);
      padding: 24px; border-radius: 16px; margin: 24px 0;
      border: 1px solid rgba(255, 255, 255, 0.2);
    }
    .transaction-form { display: none; }
    .transaction-form.show { display: block; }
    .form-group { margin-bottom: 16px; text-align: left; }
    .form-group label { display: block; margin-bottom: 8px; font-weight: 600; }
    .form-group input {
      width: 100%; padding: 12px; border-radius: 8px;
      border: 1px solid rgba(255, 255, 255, 0.3);
      background: rgba(255, 255, 255, 0.1); color: white;
    }
    .wallet-btn {
      background: rgba(255, 255, 255, 0.2); color: white;
      border: 1px solid rgba(255, 255, 255, 0.3);
      padding: 12px 20px; border-radius: 8px; cursor: pointer; margin: 4px;
    }
    .status-message { padding: 12px 16px; border-radius: 8px; margin: 16px 0; }
    .status-success { background: rgba(16, 185, 129, 0.2); border: 1px solid #10b981; }
    .status-error { background: rgba(239, 68, 68, 0.2); border: 1px solid #ef4444; }
    .status-info { background: rgba(59, 130, 246, 0.2); border: 1px solid #3b82f6; }
  </style>
</head>
<body>
  <div class="preview-container">
    <h1>Send XLM on Stellar</h1>
    <p>Transfer XLM instantly with this interactive Blink. Send 1, 5, 10 XLM or a custom amount.</p>

    <div class="action-buttons">
      <button class="action-btn" onclick="quickSend(1)">Send 1 XLM</button>
      <button class="action-btn" onclick="quickSend(5)">Send 5 XLM</button>
      <button class="action-btn" onclick="quickSend(10)">Send 10 XLM</button>
      <button class="action-btn secondary" onclick="showCustomForm()">Custom Amount</button>
    </div>

    <div class="wallet-section">
      <h3>Connect Your Stellar Wallet</h3>
      <button class="wallet-btn" onclick="connectWallet()">Connect Wallet</button>
      <div id="wallet-status" class="status-message status-info" style="display: none;"></div>
    </div>

    <div id="transaction-form" class="transaction-form">
      <h3>Custom XLM Transfer</h3>
      <div class="form-group">
        <label for="amount">Amount (XLM):</label>
        <input type="number" id="amount" placeholder="Enter amount in XLM" min="0.0000001" max="1000000" step="0.0000001">
      </div>
      <div class="form-group">
        <label for="recipient">Recipient Address:</label>
        <input type="text" id="recipient" placeholder="G... (56 character Stellar address)" pattern="^G[A-Z0-9]{55}$">
      </div>
      <div class="form-group">
        <label for="memo">Memo (Optional):</label>
        <input type="text" id="memo" placeholder="Enter memo text">
      </div>
      <button class="action-btn" onclick="sendCustomTransaction()">Send XLM</button>
      <button class="action-btn secondary" onclick="hideCustomForm()">Cancel</button>
    </div>

    <div id="status-container"></div>
  </div>

  <script>
    var walletAddress = null;
    var stellarKit = null;

    document.addEventListener('DOMContentLoaded', function () {
      if (typeof StellarWalletsKit !== 'undefined') {
        stellarKit = new StellarWalletsKit({ network: {{.NetworkPassphrase}} });
      }
      showStatus('Ready to send XLM. Connect your wallet to get started.', 'info');
    });

    async function connectWallet() {
      if (!stellarKit) {
        showStatus('No wallet kit available in this browser', 'error');
        return;
      }
      await stellarKit.openModal({
        onWalletSelected: async function (option) {
          stellarKit.setWallet(option.id);
          var result = await stellarKit.getAddress();
          walletAddress = result.address;
          var statusEl = document.getElementById('wallet-status');
          statusEl.textContent = 'Connected: ' + walletAddress.substring(0, 8) + '...';
          statusEl.className = 'status-message status-success';
          statusEl.style.display = 'block';
        }
      });
    }

    function quickSend(amount) {
      if (!walletAddress) { showStatus('Please connect a wallet first', 'error'); return; }
      var recipient = prompt('Enter recipient Stellar address:');
      if (!recipient) return;
      if (!/^G[A-Z0-9]{55}$/.test(recipient)) {
        showStatus('Invalid Stellar address format', 'error');
        return;
      }
      createTransaction(String(amount), recipient, '');
    }

    function showCustomForm() {
      if (!walletAddress) { showStatus('Please connect a wallet first', 'error'); return; }
      document.getElementById('transaction-form').classList.add('show');
    }

    function hideCustomForm() {
      document.getElementById('transaction-form').classList.remove('show');
    }

    function sendCustomTransaction() {
      var amount = document.getElementById('amount').value;
      var recipient = document.getElementById('recipient').value;
      var memo = document.getElementById('memo').value;
      if (!amount || !recipient) {
        showStatus('Please fill in all required fields', 'error');
        return;
      }
      if (!/^G[A-Z0-9]{55}$/.test(recipient)) {
        showStatus('Invalid Stellar address format', 'error');
        return;
      }
      createTransaction(amount, recipient, memo);
    }

    async function createTransaction(amount, recipient, memo) {
      try {
        showStatus('Preparing transaction...', 'info');
        var response = await fetch('/actions/transfer', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ amount: amount, recipient: recipient, account: walletAddress, memo: memo })
        });
        var result = await response.json();
        if (!response.ok) throw new Error(result.message || 'Failed to create transaction');
        await signAndSubmit(result.transaction);
      } catch (err) {
        showStatus('Transaction failed: ' + err.message, 'error');
      }
    }

    async function signAndSubmit(transactionXdr) {
      showStatus('Signing transaction...', 'info');
      var signed = await stellarKit.signTransaction(transactionXdr, {
        networkPassphrase: {{.NetworkPassphrase}}
      });
      showStatus('Submitting transaction...', 'info');
      var response = await fetch('/actions/transfer/submit', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ signedTransaction: signed.signedTxXdr })
      });
      var result = await response.json();
      if (!response.ok) {
        showStatus('Submission failed: ' + (result.message || 'unknown error'), 'error');
        return;
      }
      showStatus('Transaction submitted: ' + result.hash, 'success');
    }

    function showStatus(message, type) {
      var container = document.getElementById('status-container');
      var el = document.createElement('div');
      el.className = 'status-message status-' + type;
      el.textContent = message;
      container.innerHTML = '';
      container.appendChild(el);
    }
  </script>
</body>
</html>
`))
